package decl

import "strings"

// TypeAnn is a syntactic type annotation as written in the program model:
// a named type with optional type arguments and nullability. An omitted
// annotation is the zero TypeAnn; the definitions-phase introspector can
// infer a concrete annotation for it.
type TypeAnn struct {
	Name     string
	Args     []TypeAnn
	Nullable bool
}

// IsZero reports whether the annotation was omitted.
func (t TypeAnn) IsZero() bool { return t.Name == "" && len(t.Args) == 0 }

func (t TypeAnn) String() string {
	if t.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	if t.Nullable {
		sb.WriteByte('?')
	}
	return sb.String()
}

// Ann is a convenience constructor for a plain named annotation.
func Ann(name string, args ...TypeAnn) TypeAnn {
	return TypeAnn{Name: name, Args: args}
}

// Param is one formal parameter of a function-like declaration.
type Param struct {
	Name string
	Type TypeAnn
}

func (p Param) String() string {
	if p.Type.IsZero() {
		return p.Name
	}
	return p.Type.String() + " " + p.Name
}
