// Package code models the fragments of program text macros emit. A
// fragment is an ordered list of parts; each part is either raw text or a
// reference to a declared identifier, so hosts can re-resolve references
// instead of pasting names blindly.
package code

import (
	"fmt"
	"strings"

	"loom/internal/decl"
)

// Part is one piece of a fragment: raw text, or an identifier reference
// when Ident is non-nil.
type Part struct {
	Text  string
	Ident *decl.Ident
}

// IsIdent reports whether the part references an identifier.
func (p Part) IsIdent() bool { return p.Ident != nil }

func (p Part) render() string {
	if p.Ident != nil {
		return p.Ident.Name
	}
	return p.Text
}

// Code is an immutable fragment of emitted program text.
type Code struct {
	parts []Part
}

// Raw builds a fragment from literal text.
func Raw(text string) Code {
	if text == "" {
		return Code{}
	}
	return Code{parts: []Part{{Text: text}}}
}

// Rawf builds a fragment from formatted literal text.
func Rawf(format string, args ...any) Code {
	return Raw(fmt.Sprintf(format, args...))
}

// Id builds a fragment referencing a declared identifier.
func Id(ident decl.Ident) Code {
	return Code{parts: []Part{{Ident: &ident}}}
}

// Join concatenates fragments in order.
func Join(cs ...Code) Code {
	var parts []Part
	for _, c := range cs {
		parts = append(parts, c.parts...)
	}
	return Code{parts: parts}
}

// JoinSep concatenates fragments with a raw separator between non-empty
// neighbours.
func JoinSep(sep string, cs ...Code) Code {
	var parts []Part
	for _, c := range cs {
		if len(c.parts) == 0 {
			continue
		}
		if len(parts) > 0 && sep != "" {
			parts = append(parts, Part{Text: sep})
		}
		parts = append(parts, c.parts...)
	}
	return Code{parts: parts}
}

// FromParts rebuilds a fragment from parts, e.g. when decoding a stored
// result.
func FromParts(parts []Part) Code {
	if len(parts) == 0 {
		return Code{}
	}
	out := make([]Part, len(parts))
	copy(out, parts)
	return Code{parts: out}
}

// Parts returns a copy of the fragment's parts.
func (c Code) Parts() []Part {
	out := make([]Part, len(c.parts))
	copy(out, c.parts)
	return out
}

// IsEmpty reports whether the fragment carries no parts.
func (c Code) IsEmpty() bool { return len(c.parts) == 0 }

// String renders the fragment for display, identifier references by name.
func (c Code) String() string {
	var sb strings.Builder
	for _, p := range c.parts {
		sb.WriteString(p.render())
	}
	return sb.String()
}
