package decl

// ClassSpec carries the optional shape of a class declaration.
type ClassSpec struct {
	Abstract   bool
	Final      bool
	TypeParams []string
	Superclass TypeAnn
	Interfaces []TypeAnn
	Mixins     []TypeAnn
}

// Class is a class declaration.
type Class struct {
	meta
	spec ClassSpec
}

// NewClass constructs a class declaration.
func NewClass(id ID, library, name string, spec ClassSpec) *Class {
	return &Class{meta: newMeta(id, KindClass, library, name), spec: spec}
}

func (c *Class) Abstract() bool        { return c.spec.Abstract }
func (c *Class) Final() bool           { return c.spec.Final }
func (c *Class) TypeParams() []string  { return c.spec.TypeParams }
func (c *Class) Superclass() TypeAnn   { return c.spec.Superclass }
func (c *Class) Interfaces() []TypeAnn { return c.spec.Interfaces }
func (c *Class) Mixins() []TypeAnn     { return c.spec.Mixins }

// MixinSpec carries the optional shape of a mixin declaration.
type MixinSpec struct {
	TypeParams []string
	On         []TypeAnn
	Interfaces []TypeAnn
}

// Mixin is a mixin declaration.
type Mixin struct {
	meta
	spec MixinSpec
}

// NewMixin constructs a mixin declaration.
func NewMixin(id ID, library, name string, spec MixinSpec) *Mixin {
	return &Mixin{meta: newMeta(id, KindMixin, library, name), spec: spec}
}

func (m *Mixin) TypeParams() []string  { return m.spec.TypeParams }
func (m *Mixin) On() []TypeAnn         { return m.spec.On }
func (m *Mixin) Interfaces() []TypeAnn { return m.spec.Interfaces }

// Enum is an enum declaration. Its values are separate EnumValue
// declarations reached through introspection.
type Enum struct {
	meta
	interfaces []TypeAnn
}

// NewEnum constructs an enum declaration.
func NewEnum(id ID, library, name string, interfaces ...TypeAnn) *Enum {
	return &Enum{meta: newMeta(id, KindEnum, library, name), interfaces: interfaces}
}

func (e *Enum) Interfaces() []TypeAnn { return e.interfaces }

// Extension is an extension declaration.
type Extension struct {
	meta
	onType TypeAnn
}

// NewExtension constructs an extension declaration over onType.
func NewExtension(id ID, library, name string, onType TypeAnn) *Extension {
	return &Extension{meta: newMeta(id, KindExtension, library, name), onType: onType}
}

func (e *Extension) OnType() TypeAnn { return e.onType }

// ExtensionType is an extension type declaration wrapping a single
// representation field.
type ExtensionType struct {
	meta
	reprName string
	reprType TypeAnn
}

// NewExtensionType constructs an extension type declaration.
func NewExtensionType(id ID, library, name, reprName string, reprType TypeAnn) *ExtensionType {
	return &ExtensionType{
		meta:     newMeta(id, KindExtensionType, library, name),
		reprName: reprName,
		reprType: reprType,
	}
}

func (e *ExtensionType) ReprName() string { return e.reprName }
func (e *ExtensionType) ReprType() TypeAnn { return e.reprType }

// TypeAlias is a type alias declaration.
type TypeAlias struct {
	meta
	aliased TypeAnn
}

// NewTypeAlias constructs a type alias for aliased.
func NewTypeAlias(id ID, library, name string, aliased TypeAnn) *TypeAlias {
	return &TypeAlias{meta: newMeta(id, KindTypeAlias, library, name), aliased: aliased}
}

func (t *TypeAlias) Aliased() TypeAnn { return t.aliased }
