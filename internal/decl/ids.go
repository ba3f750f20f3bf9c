package decl

import "fmt"

// ID is the host-assigned identity of a declaration. IDs are unique within
// one program model; 0 is reserved as the invalid ID.
type ID uint32

// NoID is the invalid declaration ID.
const NoID ID = 0

// IsValid reports whether the ID refers to a declaration.
func (id ID) IsValid() bool { return id != NoID }

// Ref is a stable reference to a declaration: its identity plus its kind
// tag. Refs are what diagnostics, results and introspection queries carry
// instead of the declaration values themselves.
type Ref struct {
	ID   ID
	Kind Kind
}

// NoRef is the zero Ref.
var NoRef = Ref{}

// IsValid reports whether the Ref points at a declaration.
func (r Ref) IsValid() bool { return r.ID.IsValid() }

func (r Ref) String() string {
	if !r.IsValid() {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Ident is a library-scoped name: the unit the types phase registers new
// type names under, and the attribution handle builders carry so emitted
// declarations and diagnostics land on the right owner.
type Ident struct {
	Library string
	Name    string
}

func (i Ident) String() string {
	if i.Name == "" {
		return i.Library
	}
	if i.Library == "" {
		return i.Name
	}
	return i.Library + "::" + i.Name
}

// IsZero reports whether the Ident carries no name at all.
func (i Ident) IsZero() bool { return i.Library == "" && i.Name == "" }
