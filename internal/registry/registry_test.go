package registry

import (
	"context"
	"strings"
	"testing"

	"loom/internal/decl"
	"loom/internal/macro"
)

type stubMacro struct{ name string }

func (m *stubMacro) MacroName() string { return m.name }

func (m *stubMacro) BuildTypesForClass(ctx context.Context, t *decl.Class, b macro.IdentifiedTypesBuilder) error {
	return nil
}

func TestRegistry(t *testing.T) {
	r := New()
	a := &stubMacro{name: "a"}
	b := &stubMacro{name: "b"}

	if err := r.Register("autoEquals", a); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("observable", b); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := r.Lookup("autoEquals")
	if !ok || got != macro.Macro(a) {
		t.Errorf("Lookup(autoEquals) = %v, %v, want the registered value", got, ok)
	}
	if _, ok := r.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) succeeded")
	}

	if names := r.Names(); len(names) != 2 || names[0] != "autoEquals" || names[1] != "observable" {
		t.Errorf("Names = %v, want sorted [autoEquals observable]", names)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRegistry_Rejections(t *testing.T) {
	r := New()
	m := &stubMacro{name: "m"}

	if err := r.Register("", m); err == nil {
		t.Error("empty name accepted")
	}
	if err := r.Register("m", nil); err == nil {
		t.Error("nil macro accepted")
	}
	if err := r.Register("m", m); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("m", &stubMacro{name: "other"}); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate err = %v", err)
	}
}
