package macro

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
)

// Reporter is the diagnostic sink every builder carries.
type Reporter interface {
	// Report records a diagnostic on the current execution without
	// stopping it. To report and stop, return a *diag.Error instead.
	Report(d diag.Diagnostic)
}

// ----- types phase -----

// TypesBuilder is handed to types-phase macros on targets that cannot
// own shape edits of their own. New type names declared here belong to
// the target's library.
type TypesBuilder interface {
	decl.TypeIntrospector
	Reporter

	// DeclareType declares a brand-new named type in the target's
	// library.
	DeclareType(name string, c code.Code)
}

// IdentifiedTypesBuilder is handed to types-phase macros on Class, Enum
// and Mixin targets: in addition to declaring new types it registers
// shape edits under the target type's own identifier.
type IdentifiedTypesBuilder interface {
	TypesBuilder

	// AppendInterfaces adds entries to the target type's implements
	// clause.
	AppendInterfaces(parts ...code.Code)
	// AppendMixins adds entries to the target type's with clause.
	AppendMixins(parts ...code.Code)
}

// ----- declarations phase -----

// DeclarationsBuilder is handed to declarations-phase macros on
// top-level and free contexts (libraries, functions, variables, type
// aliases).
type DeclarationsBuilder interface {
	decl.DeclarationIntrospector
	Reporter

	// DeclareInLibrary emits a new top-level declaration in the
	// target's library.
	DeclareInLibrary(c code.Code)
}

// MemberDeclarationsBuilder is handed to declarations-phase macros on
// type targets and their members. Emitted members are attributed to the
// owning type (the target itself for type targets, the resolved owner
// for member targets).
type MemberDeclarationsBuilder interface {
	DeclarationsBuilder

	// DeclareInType emits a new member declaration in the owning type.
	DeclareInType(c code.Code)
}

// EnumDeclarationsBuilder is handed to declarations-phase macros on Enum
// and EnumValue targets.
type EnumDeclarationsBuilder interface {
	MemberDeclarationsBuilder

	// DeclareEnumValue emits a new value in the owning enum.
	DeclareEnumValue(c code.Code)
}

// ----- definitions phase -----

// FunctionDefinitionBuilder is handed to definitions-phase macros on
// function-like targets (functions, methods).
type FunctionDefinitionBuilder interface {
	decl.DefinitionIntrospector
	Reporter

	// AugmentBody provides or wraps the target's body.
	AugmentBody(c code.Code)
}

// ConstructorDefinitionBuilder is handed to definitions-phase macros on
// constructor targets; it can additionally emit initializer-list entries,
// which plain function targets cannot carry.
type ConstructorDefinitionBuilder interface {
	FunctionDefinitionBuilder

	// AugmentInitializers appends entries to the constructor's
	// initializer list.
	AugmentInitializers(parts ...code.Code)
}

// VariableDefinitionBuilder is handed to definitions-phase macros on
// variable-like targets (variables, fields).
type VariableDefinitionBuilder interface {
	decl.DefinitionIntrospector
	Reporter

	// AugmentGetter provides the target's getter body.
	AugmentGetter(c code.Code)
	// AugmentSetter provides the target's setter body.
	AugmentSetter(c code.Code)
	// AugmentInitializer provides the target's initializer expression.
	AugmentInitializer(c code.Code)
}

// TypeDefinitionBuilder is handed to definitions-phase macros on
// type-like targets (classes, mixins, extensions, extension types). It
// yields child builders bound to individual members; children share the
// parent's accumulated state, so one execution still produces exactly one
// result.
type TypeDefinitionBuilder interface {
	decl.DefinitionIntrospector
	Reporter

	// BuildMethod returns a child builder for the named method of the
	// target type.
	BuildMethod(ctx context.Context, name string) (FunctionDefinitionBuilder, error)
	// BuildConstructor returns a child builder for the named
	// constructor of the target type ("" for the unnamed one).
	BuildConstructor(ctx context.Context, name string) (ConstructorDefinitionBuilder, error)
	// BuildField returns a child builder for the named field of the
	// target type.
	BuildField(ctx context.Context, name string) (VariableDefinitionBuilder, error)
}

// EnumDefinitionBuilder is handed to definitions-phase macros on Enum
// targets.
type EnumDefinitionBuilder interface {
	TypeDefinitionBuilder

	// BuildEnumValue returns a child builder for the named value of the
	// target enum.
	BuildEnumValue(ctx context.Context, name string) (EnumValueDefinitionBuilder, error)
}

// EnumValueDefinitionBuilder is handed to definitions-phase macros on
// EnumValue targets.
type EnumValueDefinitionBuilder interface {
	decl.DefinitionIntrospector
	Reporter

	// AugmentValue provides the value's construction expression.
	AugmentValue(c code.Code)
}

// LibraryDefinitionBuilder is handed to definitions-phase macros on
// Library targets.
type LibraryDefinitionBuilder interface {
	decl.DefinitionIntrospector
	Reporter

	// BuildFunction returns a child builder for the named top-level
	// function of the target library.
	BuildFunction(ctx context.Context, name string) (FunctionDefinitionBuilder, error)
	// BuildVariable returns a child builder for the named top-level
	// variable of the target library.
	BuildVariable(ctx context.Context, name string) (VariableDefinitionBuilder, error)
}
