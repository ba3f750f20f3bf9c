package macrolib

import (
	"fmt"

	"loom/internal/macro"
	"loom/internal/registry"
)

// names the built-ins register under, in listing order.
var builtins = []struct {
	name string
	m    macro.Macro
}{
	{"autoEquals", autoEquals{}},
	{"dataInterface", dataInterface{}},
	{"enumLabels", enumLabels{}},
	{"observable", observable{}},
	{"traceEntry", traceEntry{}},
}

// Builtins returns a registry holding every built-in macro.
func Builtins() *registry.Registry {
	r := registry.New()
	for _, b := range builtins {
		if err := r.Register(b.name, b.m); err != nil {
			panic(fmt.Errorf("builtin registration: %w", err))
		}
	}
	return r
}
