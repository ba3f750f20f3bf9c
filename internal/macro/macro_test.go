package macro

import (
	"errors"
	"fmt"
	"testing"
)

type namedMacro struct{}

func (namedMacro) MacroName() string { return "custom.name" }

type plainMacro struct{}

func TestName(t *testing.T) {
	if got := Name(namedMacro{}); got != "custom.name" {
		t.Errorf("Name(namedMacro{}) = %q, want %q", got, "custom.name")
	}
	if got := Name(&namedMacro{}); got != "custom.name" {
		t.Errorf("Name(&namedMacro{}) = %q, want %q", got, "custom.name")
	}

	// Without MacroName the type name is used, pointer stripped.
	if got := Name(plainMacro{}); got != "plainMacro" {
		t.Errorf("Name(plainMacro{}) = %q, want %q", got, "plainMacro")
	}
	if got := Name(&plainMacro{}); got != "plainMacro" {
		t.Errorf("Name(&plainMacro{}) = %q, want %q", got, "plainMacro")
	}

	if got := Name(nil); got != "<nil>" {
		t.Errorf("Name(nil) = %q, want %q", got, "<nil>")
	}
}

func TestFailure_Error(t *testing.T) {
	f := Failf("introspect", "no declaration for %s", "core::Point")
	want := "macro execution failed in introspect: no declaration for core::Point"
	if f.Error() != want {
		t.Errorf("Failf Error() = %q, want %q", f.Error(), want)
	}

	inner := errors.New("ref out of range")
	wrapped := FailOp("resolve", inner)
	if wrapped.Error() != "macro execution failed in resolve: ref out of range" {
		t.Errorf("FailOp Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, inner) {
		t.Error("FailOp should wrap the inner error for errors.Is")
	}
}

func TestFailure_ErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("outer: %w", Failf("lookup", "unknown field"))

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatal("errors.As should find *Failure through wrapping")
	}
	if f.Op != "lookup" {
		t.Errorf("recovered Failure.Op = %q, want %q", f.Op, "lookup")
	}
}
