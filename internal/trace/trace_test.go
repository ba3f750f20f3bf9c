package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"error", LevelError, false},
		{"phase", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSession, false},
		{LevelError, ScopeSession, false},
		{LevelPhase, ScopeSession, true},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeApply, false},
		{LevelDetail, ScopeApply, true},
		{LevelDetail, ScopeEmit, false},
		{LevelDebug, ScopeEmit, true},
	}
	for _, tc := range tests {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	tr.Emit(&Event{
		Time:  time.Now(),
		Kind:  KindPoint,
		Scope: ScopeApply,
		Name:  "autoEquals@Point",
	})
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, line)
	}
	if decoded["name"] != "autoEquals@Point" {
		t.Errorf("name = %v", decoded["name"])
	}
	if decoded["kind"] != "point" {
		t.Errorf("kind = %v", decoded["kind"])
	}
	if decoded["scope"] != "apply" {
		t.Errorf("scope = %v", decoded["scope"])
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopeApply, Name: "skipped"})
	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopePhase, Name: "kept"})

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Errorf("apply-scope event leaked through phase level:\n%s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("phase-scope event missing:\n%s", out)
	}
}

func TestStreamTracerChromeEnvelope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)

	tr.Emit(&Event{Time: time.Now(), Kind: KindSpanBegin, Scope: ScopeSession, Name: "expand"})
	tr.Emit(&Event{Time: time.Now(), Kind: KindSpanEnd, Scope: ScopeSession, Name: "expand"})
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("chrome output is not a JSON document: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 {
		t.Fatalf("traceEvents len = %d, want 2", len(doc.TraceEvents))
	}
	if doc.TraceEvents[0]["ph"] != "B" || doc.TraceEvents[1]["ph"] != "E" {
		t.Errorf("phases = %v, %v", doc.TraceEvents[0]["ph"], doc.TraceEvents[1]["ph"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(4, LevelDebug)

	for i := 0; i < 6; i++ {
		tr.Emit(&Event{
			Time:  time.Now(),
			Kind:  KindPoint,
			Scope: ScopePhase,
			Name:  string(rune('a' + i)),
		})
	}

	events := tr.Snapshot()
	if len(events) != 4 {
		t.Fatalf("Snapshot len = %d, want 4", len(events))
	}
	want := []string{"c", "d", "e", "f"}
	for i, ev := range events {
		if ev.Name != want[i] {
			t.Errorf("events[%d].Name = %q, want %q", i, ev.Name, want[i])
		}
	}
}

func TestRingTracerDump(t *testing.T) {
	tr := NewRingTracer(8, LevelDebug)
	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopePhase, Name: "types"})

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), "types") {
		t.Errorf("dump missing event:\n%s", buf.String())
	}
}

func TestSpanBeginEnd(t *testing.T) {
	tr := NewRingTracer(16, LevelDebug)

	span := Begin(tr, ScopePhase, "declarations", 0)
	if span.ID() == 0 {
		t.Fatal("span got zero ID")
	}
	child := Begin(tr, ScopeApply, "observable@Point.x", span.ID())
	child.WithExtra("status", "ok").End("")
	span.End("2 applications")

	events := tr.Snapshot()
	if len(events) != 4 {
		t.Fatalf("event count = %d, want 4", len(events))
	}
	if events[1].ParentID != span.ID() {
		t.Errorf("child ParentID = %d, want %d", events[1].ParentID, span.ID())
	}
	if events[2].Extra["status"] != "ok" {
		t.Errorf("child end Extra = %v", events[2].Extra)
	}
	if events[3].Detail != "2 applications" {
		t.Errorf("end Detail = %q", events[3].Detail)
	}
}

func TestSpanOnDisabledTracerIsNop(t *testing.T) {
	span := Begin(Nop, ScopePhase, "types", 0)
	if span.ID() != 0 {
		t.Errorf("disabled span ID = %d, want 0", span.ID())
	}
	if dur := span.End(""); dur != 0 {
		t.Errorf("disabled span duration = %v, want 0", dur)
	}
}

func TestContextPropagation(t *testing.T) {
	if got := FromContext(context.Background()); got != Nop {
		t.Fatalf("FromContext on empty ctx = %v, want Nop", got)
	}

	tr := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if got := FromContext(ctx); got != Tracer(tr) {
		t.Fatal("FromContext did not return the attached tracer")
	}

	sc := SpanContext{SpanID: 7, GID: 1}
	ctx = WithSpanContext(ctx, sc)
	if got := CurrentSpan(ctx); got != sc {
		t.Fatalf("CurrentSpan = %+v, want %+v", got, sc)
	}
}

func TestHeartbeatEmits(t *testing.T) {
	tr := NewRingTracer(64, LevelPhase)

	hb := StartHeartbeat(tr, 2*time.Millisecond)
	if hb == nil {
		t.Fatal("StartHeartbeat returned nil for an enabled tracer")
	}
	time.Sleep(30 * time.Millisecond)
	hb.Stop()

	var beats int
	for _, ev := range tr.Snapshot() {
		if ev.Kind == KindHeartbeat {
			beats++
		}
	}
	if beats == 0 {
		t.Error("no heartbeat events recorded")
	}
}

func TestHeartbeatDisabled(t *testing.T) {
	if hb := StartHeartbeat(Nop, time.Millisecond); hb != nil {
		t.Error("StartHeartbeat on Nop tracer should return nil")
	}
	// Stop on nil must not panic.
	var hb *Heartbeat
	hb.Stop()
}

func TestNewSelectsImplementation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"off yields nop", Config{Level: LevelOff}, "trace.nopTracer"},
		{"ring", Config{Level: LevelDetail, Mode: ModeRing}, "*trace.RingTracer"},
		{"stream", Config{Level: LevelDetail, Mode: ModeStream, Output: &bytes.Buffer{}}, "*trace.StreamTracer"},
		{"both", Config{Level: LevelDetail, Mode: ModeBoth, Output: &bytes.Buffer{}}, "*trace.MultiTracer"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			// Type name check keeps the table compact.
			if got := typeName(tr); got != tc.want {
				t.Errorf("New(%+v) = %s, want %s", tc.cfg, got, tc.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nopTracer:
		return "trace.nopTracer"
	case *RingTracer:
		return "*trace.RingTracer"
	case *StreamTracer:
		return "*trace.StreamTracer"
	case *MultiTracer:
		return "*trace.MultiTracer"
	default:
		return "unknown"
	}
}
