package decl

// member is the shared part of declarations owned by a type declaration.
type member struct {
	meta
	owner Ref
}

func (m *member) Owner() Ref { return m.owner }

// ConstructorSpec carries the optional shape of a constructor.
type ConstructorSpec struct {
	Params  []Param
	Factory bool
	Const   bool
}

// Constructor is a constructor member. An unnamed constructor has the
// empty string as its name.
type Constructor struct {
	member
	spec ConstructorSpec
}

// NewConstructor constructs a constructor member of owner.
func NewConstructor(id ID, library, name string, owner Ref, spec ConstructorSpec) *Constructor {
	return &Constructor{
		member: member{meta: newMeta(id, KindConstructor, library, name), owner: owner},
		spec:   spec,
	}
}

func (c *Constructor) Params() []Param { return c.spec.Params }
func (c *Constructor) Factory() bool   { return c.spec.Factory }
func (c *Constructor) Const() bool     { return c.spec.Const }

// MethodSpec carries the optional shape of a method.
type MethodSpec struct {
	Params  []Param
	Returns TypeAnn
	Static  bool
	Getter  bool
	Setter  bool
}

// Method is a method member.
type Method struct {
	member
	spec MethodSpec
}

// NewMethod constructs a method member of owner.
func NewMethod(id ID, library, name string, owner Ref, spec MethodSpec) *Method {
	return &Method{
		member: member{meta: newMeta(id, KindMethod, library, name), owner: owner},
		spec:   spec,
	}
}

func (m *Method) Params() []Param { return m.spec.Params }
func (m *Method) Returns() TypeAnn { return m.spec.Returns }
func (m *Method) Static() bool    { return m.spec.Static }
func (m *Method) Getter() bool    { return m.spec.Getter }
func (m *Method) Setter() bool    { return m.spec.Setter }

// FieldSpec carries the optional shape of a field.
type FieldSpec struct {
	Type           TypeAnn
	Static         bool
	Final          bool
	HasInitializer bool
}

// Field is a field member.
type Field struct {
	member
	spec FieldSpec
}

// NewField constructs a field member of owner.
func NewField(id ID, library, name string, owner Ref, spec FieldSpec) *Field {
	return &Field{
		member: member{meta: newMeta(id, KindField, library, name), owner: owner},
		spec:   spec,
	}
}

func (f *Field) Type() TypeAnn        { return f.spec.Type }
func (f *Field) Static() bool         { return f.spec.Static }
func (f *Field) Final() bool          { return f.spec.Final }
func (f *Field) HasInitializer() bool { return f.spec.HasInitializer }

// EnumValue is a single value of an enum declaration.
type EnumValue struct {
	member
}

// NewEnumValue constructs an enum value owned by an enum declaration.
func NewEnumValue(id ID, library, name string, owner Ref) *EnumValue {
	return &EnumValue{member: member{meta: newMeta(id, KindEnumValue, library, name), owner: owner}}
}
