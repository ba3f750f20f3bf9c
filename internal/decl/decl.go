package decl

// Decl is the tagged variant over every program element a macro can be
// applied to. Concrete kinds are *Library, *Class, *Mixin, *Enum,
// *EnumValue, *Extension, *ExtensionType, *TypeAlias, *Function,
// *Variable, *Constructor, *Method and *Field.
type Decl interface {
	// ID returns the host-assigned identity.
	ID() ID
	// Kind returns the variant tag.
	Kind() Kind
	// Name returns the declared name (the library URI for libraries).
	Name() string
	// Library returns the URI of the declaring library.
	Library() string
	// Ref returns the stable reference to this declaration.
	Ref() Ref
	// Ident returns the library-scoped name used for attribution.
	Ident() Ident
}

// Member is implemented by declarations owned by an enclosing type
// declaration: constructors, methods, fields and enum values.
type Member interface {
	Decl
	// Owner references the enclosing type declaration.
	Owner() Ref
}

// meta is the shared identity part embedded by every concrete declaration.
type meta struct {
	id      ID
	kind    Kind
	name    string
	library string
}

func newMeta(id ID, kind Kind, library, name string) meta {
	return meta{id: id, kind: kind, name: name, library: library}
}

func (m *meta) ID() ID          { return m.id }
func (m *meta) Kind() Kind      { return m.kind }
func (m *meta) Name() string    { return m.name }
func (m *meta) Library() string { return m.library }
func (m *meta) Ref() Ref        { return Ref{ID: m.id, Kind: m.kind} }
func (m *meta) Ident() Ident    { return Ident{Library: m.library, Name: m.name} }
