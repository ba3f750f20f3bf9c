package macro

import (
	"fmt"
	"reflect"
	"strings"
)

// Macro is the marker type for a macro implementation. Concrete
// capabilities are declared by implementing the per-phase interfaces in
// this package; a value implementing none of them is a valid (if useless)
// macro that matches no dispatch case.
type Macro interface{}

// Named is optionally implemented by macros that report their own name
// for diagnostics and host listings.
type Named interface {
	MacroName() string
}

// Name returns the macro's self-reported name or, failing that, a name
// derived from its Go type.
func Name(m Macro) string {
	if m == nil {
		return "<nil>"
	}
	if n, ok := m.(Named); ok {
		if name := n.MacroName(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.String()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = fmt.Sprintf("%T", m)
	}
	return name
}
