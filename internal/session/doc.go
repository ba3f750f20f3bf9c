// Package session orchestrates full expansion runs: every macro
// application from a snapshot, across the three phases, against one
// program.
//
// A session owns the host-side policy the execution core deliberately
// leaves out: it resolves macro names through a registry, checks
// capabilities before dispatch (so the core's fatal path stays a
// programming-error signal), fans executions out over a bounded worker
// group, commits results in deterministic application order, feeds
// types-phase output back into the program, and aggregates diagnostics,
// timings and counts into a single Outcome.
//
// Optional collaborators plug in through Options: a disk cache that
// replays prior successful executions, an EventSink for progress UIs, a
// zerolog.Logger for operational logs and a trace.Tracer for spans.
package session
