package decl

import "context"

// TypeIntrospector is the query capability available during the types
// phase: name resolution only, since declarations are still in flux.
//
// Implementations may be shared by concurrent executions and must be safe
// for concurrent use. Failures beneath a macro must be reported as (or
// wrapped in) *macro.Failure values so the execution boundary preserves
// their identity.
type TypeIntrospector interface {
	// ResolveIdentifier resolves name within library to its Ident.
	ResolveIdentifier(ctx context.Context, library, name string) (Ident, error)
}

// DeclarationIntrospector is the query capability available during the
// declarations phase: everything the types phase offers, plus structural
// queries over existing declarations.
type DeclarationIntrospector interface {
	TypeIntrospector

	// DeclarationOf returns the declaration behind a reference.
	DeclarationOf(ctx context.Context, ref Ref) (Decl, error)
	// FieldsOf returns the fields of a type declaration.
	FieldsOf(ctx context.Context, typeRef Ref) ([]*Field, error)
	// MethodsOf returns the methods of a type declaration.
	MethodsOf(ctx context.Context, typeRef Ref) ([]*Method, error)
	// ConstructorsOf returns the constructors of a type declaration.
	ConstructorsOf(ctx context.Context, typeRef Ref) ([]*Constructor, error)
	// EnumValuesOf returns the values of an enum declaration.
	EnumValuesOf(ctx context.Context, enumRef Ref) ([]*EnumValue, error)
}

// DefinitionIntrospector is the query capability available during the
// definitions phase: everything the declarations phase offers, plus
// whole-library listing and type inference for omitted annotations.
type DefinitionIntrospector interface {
	DeclarationIntrospector

	// TopLevelDeclarationsOf returns every declaration of a library.
	TopLevelDeclarationsOf(ctx context.Context, library string) ([]Decl, error)
	// InferType infers the type annotation of a declaration whose
	// annotation was omitted.
	InferType(ctx context.Context, ref Ref) (TypeAnn, error)
}
