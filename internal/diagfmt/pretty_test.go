package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/expand"
	"loom/internal/macro"
)

func sampleBag() *diag.Bag {
	point := decl.Ident{Library: "app:paint", Name: "Point"}
	bag := diag.NewBag(10)
	bag.Add(diag.NewError("macro failed due to a bug in the macro implementation").
		WithTarget(point).
		WithContext("boom").
		WithCorrection("report this issue to the author of the probe macro"))
	bag.Add(diag.NewWarning("class Empty has no instance fields").
		WithTarget(decl.Ident{Library: "app:paint", Name: "Empty"}))
	bag.Add(diag.New(diag.SevInfo, "nothing else to do"))
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{ShowContexts: true, ShowCorrections: true})
	out := buf.String()

	wantLines := []string{
		"ERROR app:paint::Point: macro failed due to a bug in the macro implementation",
		"    note: boom",
		"    help: report this issue to the author of the probe macro",
		"WARNING app:paint::Empty: class Empty has no instance fields",
		"INFO: nothing else to do",
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(wantLines) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantLines), out)
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestPretty_SectionsCanBeHidden(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{})
	out := buf.String()

	if strings.Contains(out, "note:") {
		t.Errorf("contexts rendered despite ShowContexts=false:\n%s", out)
	}
	if strings.Contains(out, "help:") {
		t.Errorf("corrections rendered despite ShowCorrections=false:\n%s", out)
	}
}

func TestPretty_ColoredSeverity(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{Color: true})
	out := buf.String()

	if !strings.Contains(out, "\x1b[") {
		t.Errorf("no escape sequences in colored output:\n%q", out)
	}
	// The plain variant stays escape-free.
	buf.Reset()
	Pretty(&buf, sampleBag(), PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape sequences in plain output:\n%q", buf.String())
	}
}

func TestPretty_TruncatesToWidth(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(strings.Repeat("long message ", 20)))

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{Width: 40})

	line := strings.TrimRight(buf.String(), "\n")
	if got := runewidth.StringWidth(line); got > 40 {
		t.Errorf("line width = %d, want <= 40: %q", got, line)
	}
	if !strings.HasSuffix(line, "...") {
		t.Errorf("truncated line lacks ellipsis: %q", line)
	}
}

func TestPretty_MultilineContextStaysIndented(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError("macro failed").
		WithContext("panic: kaboom\ngoroutine 7 [running]:\nmain.run()"))

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{ShowContexts: true})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[1] != "    note: panic: kaboom" {
		t.Errorf("first context line = %q", lines[1])
	}
	for _, line := range lines[2:] {
		if !strings.HasPrefix(line, "    ") {
			t.Errorf("continuation line not indented: %q", line)
		}
	}
}

func TestRenderResult(t *testing.T) {
	point := decl.Ident{Library: "app:paint", Name: "Point"}
	res := &expand.Result{
		Phase:     macro.PhaseDeclarations,
		Target:    decl.Ref{ID: 2, Kind: decl.KindClass},
		MacroName: "autoEquals",
		NewTypes: []expand.NamedCode{
			{Name: "PointData", Code: code.Raw("abstract interface class PointData {}")},
		},
		TypeShapeEdits: []expand.ShapeEdit{
			{Slot: expand.SlotInterfaces, Owner: point, Parts: []code.Code{code.Raw("PointData")}},
		},
		Declarations: []expand.PlacedCode{
			{Placement: expand.PlaceType, Owner: point, Code: code.Raw("int get hashCode => 0;")},
		},
		Augmentations: []expand.Augmentation{
			{Target: decl.Ref{ID: 3, Kind: decl.KindField}, Slot: expand.SlotGetter, Code: code.Raw("=> _x;")},
			{Target: decl.Ref{ID: 4, Kind: decl.KindConstructor}, Slot: expand.SlotInitializerList, Parts: []code.Code{code.Raw("a = 1"), code.Raw("b = 2")}},
		},
	}

	var buf bytes.Buffer
	RenderResult(&buf, res, PrettyOpts{})

	wantLines := []string{
		"+ type PointData: abstract interface class PointData {}",
		"~ interfaces(app:paint::Point): PointData",
		"+ type(app:paint::Point): int get hashCode => 0;",
		"~ getter(field#3): => _x;",
		"~ initializers(constructor#4): a = 1, b = 2",
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(wantLines) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantLines), buf.String())
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}
