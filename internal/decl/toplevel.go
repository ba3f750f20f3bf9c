package decl

// Library is a whole library. Its Name is its URI.
type Library struct {
	meta
	uri string
}

// NewLibrary constructs a library declaration for uri.
func NewLibrary(id ID, uri string) *Library {
	return &Library{meta: newMeta(id, KindLibrary, uri, ""), uri: uri}
}

// Name returns the library URI.
func (l *Library) Name() string { return l.uri }

// URI returns the library URI.
func (l *Library) URI() string { return l.uri }

// Ident returns the library-level attribution handle.
func (l *Library) Ident() Ident { return Ident{Library: l.uri} }

// FunctionSpec carries the optional shape of a top-level function.
type FunctionSpec struct {
	Params  []Param
	Returns TypeAnn
}

// Function is a top-level function declaration.
type Function struct {
	meta
	spec FunctionSpec
}

// NewFunction constructs a top-level function declaration.
func NewFunction(id ID, library, name string, spec FunctionSpec) *Function {
	return &Function{meta: newMeta(id, KindFunction, library, name), spec: spec}
}

func (f *Function) Params() []Param  { return f.spec.Params }
func (f *Function) Returns() TypeAnn { return f.spec.Returns }

// VariableSpec carries the optional shape of a top-level variable.
type VariableSpec struct {
	Type           TypeAnn
	Final          bool
	HasInitializer bool
}

// Variable is a top-level variable declaration.
type Variable struct {
	meta
	spec VariableSpec
}

// NewVariable constructs a top-level variable declaration.
func NewVariable(id ID, library, name string, spec VariableSpec) *Variable {
	return &Variable{meta: newMeta(id, KindVariable, library, name), spec: spec}
}

func (v *Variable) Type() TypeAnn        { return v.spec.Type }
func (v *Variable) Final() bool          { return v.spec.Final }
func (v *Variable) HasInitializer() bool { return v.spec.HasInitializer }
