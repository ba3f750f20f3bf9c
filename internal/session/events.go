package session

import (
	"time"

	"loom/internal/decl"
	"loom/internal/macro"
	"loom/internal/program"
)

// Status captures progress state of one macro application within a phase.
type Status string

const (
	// StatusRunning indicates the application is currently executing.
	StatusRunning Status = "running"
	// StatusDone indicates the application finished cleanly.
	StatusDone Status = "done"
	// StatusCached indicates a cache hit replaced the execution.
	StatusCached Status = "cached"
	// StatusSkipped indicates the macro lacks the phase's capability.
	StatusSkipped Status = "skipped"
	// StatusFailed indicates the execution produced a failure or an
	// error diagnostic.
	StatusFailed Status = "failed"
)

// Event reports progress for one application, or for the phase as a whole
// when Macro is empty.
type Event struct {
	Target  string // owner-qualified target label, e.g. "Point.x"
	Macro   string
	Phase   macro.Phase
	Status  Status
	Err     error
	Elapsed time.Duration
}

// TargetLabel renders the label events carry for a target ref:
// "Owner.name" for members, the declaration's own name otherwise, and the
// raw ref for targets missing from the program. UIs keying items by label
// use this to match events against applications known up front.
func TargetLabel(prog *program.Program, ref decl.Ref) string {
	d, ok := prog.Decl(ref)
	if !ok {
		return ref.String()
	}
	return declLabel(prog, d)
}

func declLabel(prog *program.Program, d decl.Decl) string {
	if m, ok := d.(decl.Member); ok {
		if owner, found := prog.Decl(m.Owner()); found {
			name := d.Name()
			if name == "" {
				name = "new"
			}
			return owner.Name() + "." + name
		}
	}
	return d.Name()
}

// EventSink consumes session events.
type EventSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}
