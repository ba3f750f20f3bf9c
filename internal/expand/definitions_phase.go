package expand

import (
	"context"

	"loom/internal/decl"
	"loom/internal/macro"
)

// ExecuteDefinitionMacro runs the definitions-phase capability of m
// matching the target's kind. Library, Enum, EnumValue and Constructor
// targets get fully distinct builders because each carries emission
// operations the broad function-like, variable-like and type-like
// builders do not. Type aliases have no body to fill, so an alias target
// never matches.
func ExecuteDefinitionMacro(ctx context.Context, m macro.Macro, target decl.Decl, in decl.DefinitionIntrospector) (*Result, error) {
	st := newState(macro.PhaseDefinitions, target, m)
	var run func(context.Context) error

	switch t := target.(type) {
	case *decl.Library:
		mm, ok := m.(macro.LibraryDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &libraryDefBuilder{defBuilder: newDefBuilder(st, in, t.Ref()), library: t.URI()}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForLibrary(ctx, t, b) }
	case *decl.Class:
		mm, ok := m.(macro.ClassDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &typeDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForClass(ctx, t, b) }
	case *decl.Mixin:
		mm, ok := m.(macro.MixinDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &typeDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForMixin(ctx, t, b) }
	case *decl.Enum:
		mm, ok := m.(macro.EnumDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &enumDefBuilder{typeDefBuilder{newDefBuilder(st, in, t.Ref())}}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForEnum(ctx, t, b) }
	case *decl.EnumValue:
		mm, ok := m.(macro.EnumValueDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &enumValueDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForEnumValue(ctx, t, b) }
	case *decl.Extension:
		mm, ok := m.(macro.ExtensionDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &typeDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForExtension(ctx, t, b) }
	case *decl.ExtensionType:
		mm, ok := m.(macro.ExtensionTypeDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &typeDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForExtensionType(ctx, t, b) }
	case *decl.Function:
		mm, ok := m.(macro.FunctionDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &functionDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForFunction(ctx, t, b) }
	case *decl.Variable:
		mm, ok := m.(macro.VariableDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &variableDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForVariable(ctx, t, b) }
	case *decl.Constructor:
		mm, ok := m.(macro.ConstructorDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &constructorDefBuilder{functionDefBuilder{newDefBuilder(st, in, t.Ref())}}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForConstructor(ctx, t, b) }
	case *decl.Method:
		mm, ok := m.(macro.MethodDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &functionDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForMethod(ctx, t, b) }
	case *decl.Field:
		mm, ok := m.(macro.FieldDefinition)
		if !ok {
			return nil, unsupported(macro.PhaseDefinitions, target, m)
		}
		b := &variableDefBuilder{newDefBuilder(st, in, t.Ref())}
		run = func(ctx context.Context) error { return mm.BuildDefinitionForField(ctx, t, b) }
	default:
		return nil, unsupported(macro.PhaseDefinitions, target, m)
	}

	invoke(ctx, st, run)
	return st.result(), nil
}
