// Package macro declares the surface a macro implementation programs
// against: the three expansion phases, one capability interface per
// (phase, target kind) pair, the builder capabilities each phase hands to
// a macro, and the framework Failure type used when tooling beneath the
// macro breaks.
//
// A macro is any value implementing a subset of the capability
// interfaces. Which interface applies to an invocation is decided solely
// by the target's kind and the active phase; the execution core performs
// that dispatch. Every capability method receives a context, the concrete
// target declaration, and the phase- and kind-correct builder, and returns
// an error: nil on success, *diag.Error to report a problem deliberately,
// anything else counts as a bug in the macro.
package macro
