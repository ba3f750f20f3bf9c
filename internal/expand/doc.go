// Package expand is the macro execution core: it takes one (macro,
// target, introspector) triple, dispatches to the single augmentation
// method matching the active phase and the target's kind, hands the macro
// the one correct builder variant, runs it under a uniform failure
// boundary, and extracts an immutable Result.
//
// # Entry points
//
// One per phase, structurally identical:
//
//   - ExecuteTypesMacro: macros may introduce new type names
//   - ExecuteDeclarationsMacro: macros may introduce new declarations
//   - ExecuteDefinitionMacro: macros may fill in bodies
//
// The error return carries fatal framework conditions only: an
// unsupported (target kind, capability) combination or an unresolvable
// member owner. Those indicate the caller let an invalid application
// through and are never downgraded to diagnostics. Everything a macro
// does wrong (deliberate reports, returned errors, panics) is converted
// into exactly one diagnostic or preserved failure on the Result, and the
// call returns (Result, nil).
//
// # Concurrency
//
// One call is one logical task. The core spawns no goroutines and shares
// no state between calls; each call owns its builder exclusively. Callers
// may run any number of calls concurrently as long as the introspector
// they supply tolerates concurrent queries. Cancellation is not handled
// here: the context is threaded through to the macro and its
// introspection queries, but once invoked a macro runs to completion.
package expand
