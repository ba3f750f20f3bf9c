// Package trace provides a tracing subsystem for the loom expansion engine.
//
// The trace package enables tracking of expansion sessions, phases, and
// individual macro executions to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	loom expand --trace=- --trace-level=phase app.snapshot.json
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Session and phase boundaries
//   - LevelDetail: Per-application events
//   - LevelDebug: Everything including emission-level events
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeSession: Top-level expansion sessions
//   - ScopePhase: Expansion phases (types, declarations, definitions)
//   - ScopeApply: Individual macro executions
//   - ScopeEmit: Emission level (most detailed)
//
// # Context Propagation
//
// Tracers are propagated through the expansion pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "declarations", parentID)
//	defer span.End("")
package trace
