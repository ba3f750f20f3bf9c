package expand

import (
	"context"

	"loom/internal/decl"
	"loom/internal/macro"
)

// ExecuteDeclarationsMacro runs the declarations-phase capability of m
// matching the target's kind. Three builder shapes exist: enum contexts,
// members of a type, and top-level contexts. Member targets have their
// owning type resolved through the introspector before the macro runs; an
// unresolvable owner is fatal, like a missing dispatch case.
func ExecuteDeclarationsMacro(ctx context.Context, m macro.Macro, target decl.Decl, in decl.DeclarationIntrospector) (*Result, error) {
	st := newState(macro.PhaseDeclarations, target, m)
	var run func(context.Context) error

	switch t := target.(type) {
	case *decl.Library:
		mm, ok := m.(macro.LibraryDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newDeclarationsBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForLibrary(ctx, t, b) }
	case *decl.Class:
		mm, ok := m.(macro.ClassDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newMemberDeclarationsBuilder(st, in, t, t.Ident())
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForClass(ctx, t, b) }
	case *decl.Mixin:
		mm, ok := m.(macro.MixinDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newMemberDeclarationsBuilder(st, in, t, t.Ident())
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForMixin(ctx, t, b) }
	case *decl.Enum:
		mm, ok := m.(macro.EnumDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newEnumDeclarationsBuilder(st, in, t, t.Ident())
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForEnum(ctx, t, b) }
	case *decl.EnumValue:
		mm, ok := m.(macro.EnumValueDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		owner, err := resolveOwner(ctx, macro.PhaseDeclarations, in, t)
		if err != nil {
			return nil, err
		}
		b := newEnumDeclarationsBuilder(st, in, t, owner)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForEnumValue(ctx, t, b) }
	case *decl.Extension:
		mm, ok := m.(macro.ExtensionDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newMemberDeclarationsBuilder(st, in, t, t.Ident())
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForExtension(ctx, t, b) }
	case *decl.ExtensionType:
		mm, ok := m.(macro.ExtensionTypeDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newMemberDeclarationsBuilder(st, in, t, t.Ident())
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForExtensionType(ctx, t, b) }
	case *decl.TypeAlias:
		mm, ok := m.(macro.TypeAliasDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newDeclarationsBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForTypeAlias(ctx, t, b) }
	case *decl.Function:
		mm, ok := m.(macro.FunctionDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newDeclarationsBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForFunction(ctx, t, b) }
	case *decl.Variable:
		mm, ok := m.(macro.VariableDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		b := newDeclarationsBuilder(st, in, t)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForVariable(ctx, t, b) }
	case *decl.Constructor:
		mm, ok := m.(macro.ConstructorDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		owner, err := resolveOwner(ctx, macro.PhaseDeclarations, in, t)
		if err != nil {
			return nil, err
		}
		b := newMemberDeclarationsBuilder(st, in, t, owner)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForConstructor(ctx, t, b) }
	case *decl.Method:
		mm, ok := m.(macro.MethodDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		owner, err := resolveOwner(ctx, macro.PhaseDeclarations, in, t)
		if err != nil {
			return nil, err
		}
		b := newMemberDeclarationsBuilder(st, in, t, owner)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForMethod(ctx, t, b) }
	case *decl.Field:
		mm, ok := m.(macro.FieldDeclarations)
		if !ok {
			return nil, unsupported(macro.PhaseDeclarations, target, m)
		}
		owner, err := resolveOwner(ctx, macro.PhaseDeclarations, in, t)
		if err != nil {
			return nil, err
		}
		b := newMemberDeclarationsBuilder(st, in, t, owner)
		run = func(ctx context.Context) error { return mm.BuildDeclarationsForField(ctx, t, b) }
	default:
		return nil, unsupported(macro.PhaseDeclarations, target, m)
	}

	invoke(ctx, st, run)
	return st.result(), nil
}

// resolveOwner looks up the owning type declaration of a member target.
// It runs before the failure boundary: an owner the introspector cannot
// resolve is a framework invariant violation, not a macro outcome.
func resolveOwner(ctx context.Context, phase macro.Phase, in decl.DeclarationIntrospector, target decl.Member) (decl.Ident, error) {
	owner, err := in.DeclarationOf(ctx, target.Owner())
	if err != nil {
		return decl.Ident{}, unresolvedOwner(phase, target, target.Owner(), err)
	}
	return owner.Ident(), nil
}
