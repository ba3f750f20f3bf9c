// Package program is the in-memory host model the expansion core runs
// against: a set of declarations with per-owner member indexes and an
// NFC-normalizing identifier table. It implements all three introspector
// levels of package decl, and it is what snapshots load into.
//
// A Program is safe for concurrent introspection; mutation (AddDecl,
// RegisterType) is serialized against readers, matching the host contract
// that the model only changes between expansion phases.
package program
