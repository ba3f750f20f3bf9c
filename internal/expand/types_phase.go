package expand

import (
	"context"

	"loom/internal/decl"
	"loom/internal/macro"
)

// ExecuteTypesMacro runs the types-phase capability of m matching the
// target's kind. Class, Enum and Mixin targets get the identified builder
// that can edit the target's own shape; every other kind gets the generic
// one. The returned error is fatal: no capability matched. All
// macro-level outcomes are on the Result.
func ExecuteTypesMacro(ctx context.Context, m macro.Macro, target decl.Decl, in decl.TypeIntrospector) (*Result, error) {
	st := newState(macro.PhaseTypes, target, m)
	var run func(context.Context) error

	switch t := target.(type) {
	case *decl.Library:
		mm, ok := m.(macro.LibraryTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForLibrary(ctx, t, b) }
	case *decl.Class:
		mm, ok := m.(macro.ClassTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newIdentifiedTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForClass(ctx, t, b) }
	case *decl.Mixin:
		mm, ok := m.(macro.MixinTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newIdentifiedTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForMixin(ctx, t, b) }
	case *decl.Enum:
		mm, ok := m.(macro.EnumTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newIdentifiedTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForEnum(ctx, t, b) }
	case *decl.EnumValue:
		mm, ok := m.(macro.EnumValueTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForEnumValue(ctx, t, b) }
	case *decl.Extension:
		mm, ok := m.(macro.ExtensionTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForExtension(ctx, t, b) }
	case *decl.ExtensionType:
		mm, ok := m.(macro.ExtensionTypeTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForExtensionType(ctx, t, b) }
	case *decl.TypeAlias:
		mm, ok := m.(macro.TypeAliasTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForTypeAlias(ctx, t, b) }
	case *decl.Function:
		mm, ok := m.(macro.FunctionTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForFunction(ctx, t, b) }
	case *decl.Variable:
		mm, ok := m.(macro.VariableTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForVariable(ctx, t, b) }
	case *decl.Constructor:
		mm, ok := m.(macro.ConstructorTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForConstructor(ctx, t, b) }
	case *decl.Method:
		mm, ok := m.(macro.MethodTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForMethod(ctx, t, b) }
	case *decl.Field:
		mm, ok := m.(macro.FieldTypes)
		if !ok {
			return nil, unsupported(macro.PhaseTypes, target, m)
		}
		b := newTypesBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildTypesForField(ctx, t, b) }
	default:
		return nil, unsupported(macro.PhaseTypes, target, m)
	}

	invoke(ctx, st, run)
	return st.result(), nil
}
