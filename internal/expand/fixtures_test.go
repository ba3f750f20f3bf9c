package expand

import (
	"context"
	"fmt"

	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

func infoDiag(msg string) diag.Diagnostic {
	return diag.New(diag.SevInfo, msg)
}

// fakeIntrospector is a hand-rolled host good enough for exercising the
// executors: a flat declaration table plus owner-keyed member lists.
type fakeIntrospector struct {
	decls   map[decl.ID]decl.Decl
	members map[decl.Ref][]decl.Decl
	idents  map[string]decl.Ident
}

func newFakeIntrospector() *fakeIntrospector {
	return &fakeIntrospector{
		decls:   make(map[decl.ID]decl.Decl),
		members: make(map[decl.Ref][]decl.Decl),
		idents:  make(map[string]decl.Ident),
	}
}

func (f *fakeIntrospector) add(d decl.Decl) {
	f.decls[d.ID()] = d
	f.idents[d.Library()+"::"+d.Name()] = d.Ident()
	if m, ok := d.(decl.Member); ok {
		f.members[m.Owner()] = append(f.members[m.Owner()], d)
	}
}

func (f *fakeIntrospector) ResolveIdentifier(ctx context.Context, library, name string) (decl.Ident, error) {
	if id, ok := f.idents[library+"::"+name]; ok {
		return id, nil
	}
	return decl.Ident{}, macro.Failf("ResolveIdentifier", "no declaration named %q in %s", name, library)
}

func (f *fakeIntrospector) DeclarationOf(ctx context.Context, ref decl.Ref) (decl.Decl, error) {
	if d, ok := f.decls[ref.ID]; ok {
		return d, nil
	}
	return nil, macro.Failf("DeclarationOf", "unknown declaration %s", ref)
}

func (f *fakeIntrospector) FieldsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Field, error) {
	var out []*decl.Field
	for _, d := range f.members[typeRef] {
		if fd, ok := d.(*decl.Field); ok {
			out = append(out, fd)
		}
	}
	return out, nil
}

func (f *fakeIntrospector) MethodsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Method, error) {
	var out []*decl.Method
	for _, d := range f.members[typeRef] {
		if md, ok := d.(*decl.Method); ok {
			out = append(out, md)
		}
	}
	return out, nil
}

func (f *fakeIntrospector) ConstructorsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Constructor, error) {
	var out []*decl.Constructor
	for _, d := range f.members[typeRef] {
		if cd, ok := d.(*decl.Constructor); ok {
			out = append(out, cd)
		}
	}
	return out, nil
}

func (f *fakeIntrospector) EnumValuesOf(ctx context.Context, enumRef decl.Ref) ([]*decl.EnumValue, error) {
	var out []*decl.EnumValue
	for _, d := range f.members[enumRef] {
		if vd, ok := d.(*decl.EnumValue); ok {
			out = append(out, vd)
		}
	}
	return out, nil
}

func (f *fakeIntrospector) TopLevelDeclarationsOf(ctx context.Context, library string) ([]decl.Decl, error) {
	var out []decl.Decl
	for id := decl.ID(1); int(id) <= len(f.decls); id++ {
		d, ok := f.decls[id]
		if !ok || d.Library() != library {
			continue
		}
		if _, member := d.(decl.Member); member {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeIntrospector) InferType(ctx context.Context, ref decl.Ref) (decl.TypeAnn, error) {
	d, ok := f.decls[ref.ID]
	if !ok {
		return decl.TypeAnn{}, macro.Failf("InferType", "unknown declaration %s", ref)
	}
	switch v := d.(type) {
	case *decl.Field:
		if !v.Type().IsZero() {
			return v.Type(), nil
		}
	case *decl.Variable:
		if !v.Type().IsZero() {
			return v.Type(), nil
		}
	}
	return decl.TypeAnn{}, macro.Failf("InferType", "no annotation to infer for %s", ref)
}

// fixture is the little program every executor test runs against.
type fixture struct {
	in *fakeIntrospector

	lib       *decl.Library
	class     *decl.Class
	mixin     *decl.Mixin
	enum      *decl.Enum
	enumVal   *decl.EnumValue
	ext       *decl.Extension
	extType   *decl.ExtensionType
	alias     *decl.TypeAlias
	fn        *decl.Function
	variable  *decl.Variable
	ctor      *decl.Constructor
	method    *decl.Method
	field     *decl.Field
	orphan    *decl.Field // owner missing from the introspector
	fieldName string
}

func newFixture() *fixture {
	const lib = "app:geometry"
	fx := &fixture{in: newFakeIntrospector(), fieldName: "x"}

	fx.lib = decl.NewLibrary(1, lib)
	fx.class = decl.NewClass(2, lib, "Point", decl.ClassSpec{})
	fx.mixin = decl.NewMixin(3, lib, "Comparable", decl.MixinSpec{})
	fx.enum = decl.NewEnum(4, lib, "Color")
	fx.enumVal = decl.NewEnumValue(5, lib, "red", fx.enum.Ref())
	fx.ext = decl.NewExtension(6, lib, "PointExt", decl.Ann("Point"))
	fx.extType = decl.NewExtensionType(7, lib, "Meters", "value", decl.Ann("double"))
	fx.alias = decl.NewTypeAlias(8, lib, "Coords", decl.Ann("Point"))
	fx.fn = decl.NewFunction(9, lib, "origin", decl.FunctionSpec{Returns: decl.Ann("Point")})
	fx.variable = decl.NewVariable(10, lib, "unit", decl.VariableSpec{Type: decl.Ann("double")})
	fx.ctor = decl.NewConstructor(11, lib, "", fx.class.Ref(), decl.ConstructorSpec{})
	fx.method = decl.NewMethod(12, lib, "scale", fx.class.Ref(), decl.MethodSpec{Returns: decl.Ann("Point")})
	fx.field = decl.NewField(13, lib, "x", fx.class.Ref(), decl.FieldSpec{Type: decl.Ann("double")})
	fx.orphan = decl.NewField(14, lib, "lost", decl.Ref{ID: 999, Kind: decl.KindClass}, decl.FieldSpec{})

	for _, d := range []decl.Decl{
		fx.lib, fx.class, fx.mixin, fx.enum, fx.enumVal, fx.ext, fx.extType,
		fx.alias, fx.fn, fx.variable, fx.ctor, fx.method, fx.field,
	} {
		fx.in.add(d)
	}
	// The orphan is known but its owner is not.
	fx.in.decls[fx.orphan.ID()] = fx.orphan
	return fx
}

func (fx *fixture) targetFor(kind decl.Kind) decl.Decl {
	switch kind {
	case decl.KindLibrary:
		return fx.lib
	case decl.KindClass:
		return fx.class
	case decl.KindMixin:
		return fx.mixin
	case decl.KindEnum:
		return fx.enum
	case decl.KindEnumValue:
		return fx.enumVal
	case decl.KindExtension:
		return fx.ext
	case decl.KindExtensionType:
		return fx.extType
	case decl.KindTypeAlias:
		return fx.alias
	case decl.KindFunction:
		return fx.fn
	case decl.KindVariable:
		return fx.variable
	case decl.KindConstructor:
		return fx.ctor
	case decl.KindMethod:
		return fx.method
	case decl.KindField:
		return fx.field
	}
	panic(fmt.Sprintf("no fixture target for kind %v", kind))
}
