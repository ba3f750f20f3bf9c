// Package decl defines the program-element model macros are applied to.
//
// # Purpose
//
//   - Model every target kind a macro can attach to (libraries, types,
//     members, top-level functions and variables) as an immutable tagged
//     variant: one concrete struct per Kind, all implementing Decl.
//   - Provide the stable handles the engine threads through a call:
//     ID (host-assigned identity), Ref (identity plus kind tag), and
//     Ident (library-scoped name used for attribution of emitted code).
//   - Declare the three introspector capability levels that scope what a
//     macro may query in each expansion phase.
//
// # Scope
//
// Package decl is data plus query contracts only. It does not resolve
// queries (see internal/program for the in-memory host), does not execute
// macros (internal/expand), and never mutates a declaration after
// construction: targets are read-only views supplied by the host, valid
// for the duration of one execution call.
package decl
