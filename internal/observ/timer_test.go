package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("load")
	time.Sleep(time.Millisecond)
	timer.End(idx, "14 declarations")

	idx = timer.Begin("declarations")
	timer.End(idx, "")

	report := timer.Report()
	if len(report.Stages) != 2 {
		t.Fatalf("Stages len = %d, want 2", len(report.Stages))
	}
	if report.Stages[0].Name != "load" || report.Stages[1].Name != "declarations" {
		t.Fatalf("stage names = %q, %q", report.Stages[0].Name, report.Stages[1].Name)
	}
	if report.Stages[0].DurationMS <= 0 {
		t.Errorf("load duration = %v, want > 0", report.Stages[0].DurationMS)
	}
	if report.Stages[0].Note != "14 declarations" {
		t.Errorf("note = %q", report.Stages[0].Note)
	}
	if report.TotalMS < report.Stages[0].DurationMS {
		t.Errorf("total %v < first stage %v", report.TotalMS, report.Stages[0].DurationMS)
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(3, "")
	if got := timer.Report(); len(got.Stages) != 0 {
		t.Fatalf("Report after bad End = %+v, want empty", got)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("definitions")
	timer.End(idx, "9 ok")

	sum := timer.Summary()
	for _, want := range []string{"timings:", "definitions", "// 9 ok", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("Summary missing %q:\n%s", want, sum)
		}
	}
}

func TestTimerEmptyReport(t *testing.T) {
	if got := NewTimer().Report(); got.TotalMS != 0 || len(got.Stages) != 0 {
		t.Fatalf("empty timer report = %+v", got)
	}
}
