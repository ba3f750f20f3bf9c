package session

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/expand"
	"loom/internal/macro"
	"loom/internal/macrolib"
	"loom/internal/program"
)

// sampleResult exercises every artifact variety the cache must round-trip.
func sampleResult() *expand.Result {
	owner := decl.Ident{Library: "app:paint", Name: "Point"}
	target := decl.Ident{Library: "app:paint", Name: "Point"}
	return &expand.Result{
		Phase:     macro.PhaseDeclarations,
		Target:    decl.Ref{ID: 2, Kind: decl.KindClass},
		MacroName: "autoEquals",
		NewTypes: []expand.NamedCode{
			{Name: "PointData", Code: code.Raw("abstract interface class PointData {}")},
		},
		TypeShapeEdits: []expand.ShapeEdit{
			{Slot: expand.SlotInterfaces, Owner: owner, Parts: []code.Code{code.Id(target)}},
		},
		Declarations: []expand.PlacedCode{
			{Placement: expand.PlaceType, Owner: owner, Code: code.Join(code.Raw("bool operator ==(Object other) => other is "), code.Id(target), code.Raw(";"))},
		},
		Augmentations: []expand.Augmentation{
			{Target: decl.Ref{ID: 3, Kind: decl.KindField}, Slot: expand.SlotGetter, Code: code.Raw("=> _x;")},
			{Target: decl.Ref{ID: 4, Kind: decl.KindConstructor}, Slot: expand.SlotInitializerList, Parts: []code.Code{code.Raw("label = 'red'")}},
		},
		Diagnostics: []diag.Diagnostic{
			diag.NewWarning("class Point has one field").
				WithTarget(target).
				WithContextAt("declared here", owner).
				WithCorrection("add more fields"),
		},
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	want := sampleResult()
	key := cacheKey("digest-a", want.MacroName, want.Target, want.Phase)

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get before Put = (%v, %v), want miss", ok, err)
	}
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get missed a stored result")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	// Fragments survive with identifier references intact.
	if got.Declarations[0].Code.String() != "bool operator ==(Object other) => other is Point;" {
		t.Errorf("decoded declaration = %q", got.Declarations[0].Code.String())
	}
	if parts := got.TypeShapeEdits[0].Parts[0].Parts(); !parts[0].IsIdent() {
		t.Error("identifier part decoded as raw text")
	}
}

func TestCache_KeySeparatesInputs(t *testing.T) {
	base := cacheKey("digest-a", "autoEquals", decl.Ref{ID: 2, Kind: decl.KindClass}, macro.PhaseDeclarations)
	tests := []struct {
		name string
		key  string
	}{
		{"digest", cacheKey("digest-b", "autoEquals", decl.Ref{ID: 2, Kind: decl.KindClass}, macro.PhaseDeclarations)},
		{"macro", cacheKey("digest-a", "observable", decl.Ref{ID: 2, Kind: decl.KindClass}, macro.PhaseDeclarations)},
		{"target", cacheKey("digest-a", "autoEquals", decl.Ref{ID: 3, Kind: decl.KindClass}, macro.PhaseDeclarations)},
		{"phase", cacheKey("digest-a", "autoEquals", decl.Ref{ID: 2, Kind: decl.KindClass}, macro.PhaseDefinitions)},
	}
	for _, tc := range tests {
		if tc.key == base {
			t.Errorf("changing the %s did not change the key", tc.name)
		}
	}
	if len(base) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(base))
	}
}

func TestCache_RejectsFailedResults(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	r := sampleResult()
	r.Failure = macro.Failf("FieldsOf", "introspection broke")

	if err := c.Put("any", r); err == nil {
		t.Fatal("Put accepted a failed result")
	}
}

func TestCache_StaleSchemaIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	key := cacheKey("digest-a", "autoEquals", decl.Ref{ID: 2, Kind: decl.KindClass}, macro.PhaseDeclarations)
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	stale, err := msgpack.Marshal(&cachedResult{Schema: cacheSchemaVersion + 1, MacroName: "autoEquals"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, stale, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Errorf("Get on stale schema = (%v, %v), want miss", ok, err)
	}
}

func TestCache_NilIsInert(t *testing.T) {
	var c *Cache
	if err := c.Put("k", sampleResult()); err != nil {
		t.Errorf("nil Put = %v", err)
	}
	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Errorf("nil Get = (%v, %v)", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("nil DropAll = %v", err)
	}
}

func TestCache_DropAll(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	key := cacheKey("digest-a", "m", decl.Ref{ID: 1, Kind: decl.KindClass}, macro.PhaseTypes)
	if err := c.Put(key, sampleResult()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Error("entry survived DropAll")
	}
}

func TestRun_CacheReplaysResults(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}

	run := func(digest string) *Outcome {
		p, decls := paint(t)
		apps := []program.Application{
			app("autoEquals", decls["Point"]),
			app("autoEquals", decls["Empty"]),
			app("observable", decls["_x"]),
		}
		out, err := Run(context.Background(), p, apps, Options{
			Registry: macrolib.Builtins(),
			Cache:    c,
			Digest:   digest,
		})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return out
	}

	first := run("digest-a")
	if first.Executed != 4 || first.CacheHits != 0 {
		t.Fatalf("first run Executed = %d, CacheHits = %d, want 4, 0", first.Executed, first.CacheHits)
	}
	// autoEquals on the fieldless class warns; that diagnostic must
	// replay from the cache as well.
	if first.Bag.Len() != 1 {
		t.Fatalf("first run Bag = %+v", first.Bag.Items())
	}

	second := run("digest-a")
	if second.Executed != 0 || second.CacheHits != 4 {
		t.Errorf("second run Executed = %d, CacheHits = %d, want 0, 4", second.Executed, second.CacheHits)
	}
	if !reflect.DeepEqual(first.Expansions, second.Expansions) {
		t.Error("cached expansions differ from the executed ones")
	}
	if !reflect.DeepEqual(first.Bag.Items(), second.Bag.Items()) {
		t.Errorf("cached diagnostics differ:\n%+v\n%+v", first.Bag.Items(), second.Bag.Items())
	}

	// A different snapshot digest must not replay anything.
	third := run("digest-b")
	if third.Executed != 4 || third.CacheHits != 0 {
		t.Errorf("third run Executed = %d, CacheHits = %d, want 4, 0", third.Executed, third.CacheHits)
	}
}
