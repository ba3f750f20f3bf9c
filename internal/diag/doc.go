// Package diag defines the diagnostic model shared by every expansion
// phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures for problems a
//     macro reports (or the engine synthesizes on a macro's behalf).
//   - Offer light-weight aggregation (Bag) so hosts can collect findings
//     across many executions without coupling to storage or formatting.
//   - Carry a diagnostic across a Go call boundary as an error value
//     (Error) without turning it into an exception-like control flow: the
//     execution boundary unwraps it back into data.
//
// # Data model
//
// Diagnostic is the central record: a severity, a primary message, an
// optional target (the declaration the problem is about), zero or more
// context messages adding secondary information, and an optional
// correction telling the user what to do about it. Diagnostics are values;
// rendering lives in internal/diagfmt.
//
// Contexts should be used sparingly: each context must add new information
// (for example "declared here") rather than repeating the message.
package diag
