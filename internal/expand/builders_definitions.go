package expand

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// defBuilder is the part every definitions-phase builder shares: the
// introspector, the state, and the declaration the builder augments.
type defBuilder struct {
	decl.DefinitionIntrospector
	st     *state
	target decl.Ref
}

func (b *defBuilder) Report(d diag.Diagnostic) { b.st.report(d) }

func newDefBuilder(st *state, in decl.DefinitionIntrospector, target decl.Ref) defBuilder {
	return defBuilder{DefinitionIntrospector: in, st: st, target: target}
}

// functionDefBuilder serves Function and Method targets, and is the child
// builder for named function-like members.
type functionDefBuilder struct {
	defBuilder
}

func (b *functionDefBuilder) AugmentBody(c code.Code) {
	b.st.augment(b.target, SlotBody, c)
}

// constructorDefBuilder serves Constructor targets; unlike a plain
// function it can carry initializer-list entries.
type constructorDefBuilder struct {
	functionDefBuilder
}

func (b *constructorDefBuilder) AugmentInitializers(parts ...code.Code) {
	b.st.augmentParts(b.target, SlotInitializerList, parts)
}

// variableDefBuilder serves Variable and Field targets.
type variableDefBuilder struct {
	defBuilder
}

func (b *variableDefBuilder) AugmentGetter(c code.Code) {
	b.st.augment(b.target, SlotGetter, c)
}

func (b *variableDefBuilder) AugmentSetter(c code.Code) {
	b.st.augment(b.target, SlotSetter, c)
}

func (b *variableDefBuilder) AugmentInitializer(c code.Code) {
	b.st.augment(b.target, SlotInitializer, c)
}

// enumValueDefBuilder serves EnumValue targets.
type enumValueDefBuilder struct {
	defBuilder
}

func (b *enumValueDefBuilder) AugmentValue(c code.Code) {
	b.st.augment(b.target, SlotValue, c)
}

// typeDefBuilder serves Class, Mixin, Extension and ExtensionType
// targets. Its Build* methods hand out child builders bound to individual
// members; children share this builder's state, so the call still
// produces exactly one result. An unresolvable member is a framework
// failure surfacing inside the macro call, reported as *macro.Failure for
// the boundary to preserve.
type typeDefBuilder struct {
	defBuilder
}

func (b *typeDefBuilder) BuildMethod(ctx context.Context, name string) (macro.FunctionDefinitionBuilder, error) {
	methods, err := b.MethodsOf(ctx, b.target)
	if err != nil {
		return nil, asFailure("BuildMethod", err)
	}
	for _, m := range methods {
		if m.Name() == name {
			return &functionDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, m.Ref())}, nil
		}
	}
	return nil, macro.Failf("BuildMethod", "no method named %q in %s", name, b.target)
}

func (b *typeDefBuilder) BuildConstructor(ctx context.Context, name string) (macro.ConstructorDefinitionBuilder, error) {
	ctors, err := b.ConstructorsOf(ctx, b.target)
	if err != nil {
		return nil, asFailure("BuildConstructor", err)
	}
	for _, c := range ctors {
		if c.Name() == name {
			return &constructorDefBuilder{functionDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, c.Ref())}}, nil
		}
	}
	return nil, macro.Failf("BuildConstructor", "no constructor named %q in %s", name, b.target)
}

func (b *typeDefBuilder) BuildField(ctx context.Context, name string) (macro.VariableDefinitionBuilder, error) {
	fields, err := b.FieldsOf(ctx, b.target)
	if err != nil {
		return nil, asFailure("BuildField", err)
	}
	for _, f := range fields {
		if f.Name() == name {
			return &variableDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, f.Ref())}, nil
		}
	}
	return nil, macro.Failf("BuildField", "no field named %q in %s", name, b.target)
}

// enumDefBuilder serves Enum targets.
type enumDefBuilder struct {
	typeDefBuilder
}

func (b *enumDefBuilder) BuildEnumValue(ctx context.Context, name string) (macro.EnumValueDefinitionBuilder, error) {
	values, err := b.EnumValuesOf(ctx, b.target)
	if err != nil {
		return nil, asFailure("BuildEnumValue", err)
	}
	for _, v := range values {
		if v.Name() == name {
			return &enumValueDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, v.Ref())}, nil
		}
	}
	return nil, macro.Failf("BuildEnumValue", "no value named %q in %s", name, b.target)
}

// libraryDefBuilder serves Library targets.
type libraryDefBuilder struct {
	defBuilder
	library string
}

func (b *libraryDefBuilder) BuildFunction(ctx context.Context, name string) (macro.FunctionDefinitionBuilder, error) {
	d, err := b.topLevel(ctx, "BuildFunction", decl.KindFunction, name)
	if err != nil {
		return nil, err
	}
	return &functionDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, d.Ref())}, nil
}

func (b *libraryDefBuilder) BuildVariable(ctx context.Context, name string) (macro.VariableDefinitionBuilder, error) {
	d, err := b.topLevel(ctx, "BuildVariable", decl.KindVariable, name)
	if err != nil {
		return nil, err
	}
	return &variableDefBuilder{newDefBuilder(b.st, b.DefinitionIntrospector, d.Ref())}, nil
}

func (b *libraryDefBuilder) topLevel(ctx context.Context, op string, kind decl.Kind, name string) (decl.Decl, error) {
	decls, err := b.TopLevelDeclarationsOf(ctx, b.library)
	if err != nil {
		return nil, asFailure(op, err)
	}
	for _, d := range decls {
		if d.Kind() == kind && d.Name() == name {
			return d, nil
		}
	}
	return nil, macro.Failf(op, "no %s named %q in %s", kind, name, b.library)
}

// asFailure keeps an introspection error's identity when it already is a
// Failure and wraps it otherwise.
func asFailure(op string, err error) *macro.Failure {
	if f, ok := err.(*macro.Failure); ok {
		return f
	}
	return macro.FailOp(op, err)
}
