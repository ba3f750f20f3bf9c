package ui

import (
	"strings"
	"testing"

	"loom/internal/macro"
	"loom/internal/session"
)

func newTestModel(t *testing.T, apps ...Item) *progressModel {
	t.Helper()
	events := make(chan session.Event)
	model, ok := NewProgressModel("expanding app:paint", apps, events).(*progressModel)
	if !ok {
		t.Fatal("NewProgressModel did not return *progressModel")
	}
	return model
}

func TestApplyEventAdvancesItems(t *testing.T) {
	m := newTestModel(t, Item{Macro: "autoEquals", Target: "Point"})

	m.applyEvent(session.Event{Phase: macro.PhaseTypes, Status: session.StatusRunning})
	if m.phaseLabel != "types" {
		t.Errorf("phaseLabel = %q, want types", m.phaseLabel)
	}

	m.applyEvent(session.Event{Target: "Point", Macro: "autoEquals", Phase: macro.PhaseTypes, Status: session.StatusRunning})
	if got := m.items[0]; got.status != "types" || !got.running {
		t.Errorf("after running: %+v", got)
	}

	m.applyEvent(session.Event{Target: "Point", Macro: "autoEquals", Phase: macro.PhaseTypes, Status: session.StatusDone})
	item := m.items[0]
	if item.status != "done" || item.completed != 1 || item.running {
		t.Errorf("after done: %+v", item)
	}
	if f := item.fraction(); f < 0.33 || f > 0.34 {
		t.Errorf("fraction after one phase = %v", f)
	}

	m.applyEvent(session.Event{Target: "Point", Macro: "autoEquals", Phase: macro.PhaseDefinitions, Status: session.StatusFailed})
	item = m.items[0]
	if item.status != "failed" || !item.terminal {
		t.Errorf("after failure: %+v", item)
	}
	if f := item.fraction(); f != 1.0 {
		t.Errorf("failed items count as finished, fraction = %v", f)
	}
}

func TestApplyEventIgnoresUnknownItems(t *testing.T) {
	m := newTestModel(t, Item{Macro: "autoEquals", Target: "Point"})
	m.applyEvent(session.Event{Target: "Ghost", Macro: "autoEquals", Phase: macro.PhaseTypes, Status: session.StatusDone})
	if m.items[0].status != "queued" {
		t.Errorf("unknown target mutated a line: %+v", m.items[0])
	}
}

func TestSkippedKeepsEarlierStatus(t *testing.T) {
	m := newTestModel(t, Item{Macro: "observable", Target: "Point._x"})

	m.applyEvent(session.Event{Target: "Point._x", Macro: "observable", Phase: macro.PhaseTypes, Status: session.StatusSkipped})
	if m.items[0].status != "skipped" {
		t.Errorf("fresh item not marked skipped: %+v", m.items[0])
	}

	m.applyEvent(session.Event{Target: "Point._x", Macro: "observable", Phase: macro.PhaseDeclarations, Status: session.StatusDone})
	m.applyEvent(session.Event{Target: "Point._x", Macro: "observable", Phase: macro.PhaseDefinitions, Status: session.StatusSkipped})
	item := m.items[0]
	if item.status != "done" {
		t.Errorf("skip after done must not regress the label: %+v", item)
	}
	if item.completed != 3 {
		t.Errorf("skipped phases still advance progress: completed = %d", item.completed)
	}
}

func TestViewListsItems(t *testing.T) {
	m := newTestModel(t,
		Item{Macro: "autoEquals", Target: "Point"},
		Item{Macro: "enumLabels", Target: "Color"},
	)
	m.applyEvent(session.Event{Target: "Point", Macro: "autoEquals", Phase: macro.PhaseTypes, Status: session.StatusRunning})

	view := m.View()
	for _, want := range []string{"expanding app:paint", "autoEquals(Point)", "enumLabels(Color)", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"short", 20, "short"},
		{"averyverylongapplicationlabel", 10, "averyve..."},
		{"abc", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.value, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}
