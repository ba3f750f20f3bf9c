package macro

import (
	"context"

	"loom/internal/decl"
)

// Declarations-phase capabilities.

type LibraryDeclarations interface {
	Macro
	BuildDeclarationsForLibrary(ctx context.Context, target *decl.Library, b DeclarationsBuilder) error
}

type ClassDeclarations interface {
	Macro
	BuildDeclarationsForClass(ctx context.Context, target *decl.Class, b MemberDeclarationsBuilder) error
}

type MixinDeclarations interface {
	Macro
	BuildDeclarationsForMixin(ctx context.Context, target *decl.Mixin, b MemberDeclarationsBuilder) error
}

type EnumDeclarations interface {
	Macro
	BuildDeclarationsForEnum(ctx context.Context, target *decl.Enum, b EnumDeclarationsBuilder) error
}

type EnumValueDeclarations interface {
	Macro
	BuildDeclarationsForEnumValue(ctx context.Context, target *decl.EnumValue, b EnumDeclarationsBuilder) error
}

type ExtensionDeclarations interface {
	Macro
	BuildDeclarationsForExtension(ctx context.Context, target *decl.Extension, b MemberDeclarationsBuilder) error
}

type ExtensionTypeDeclarations interface {
	Macro
	BuildDeclarationsForExtensionType(ctx context.Context, target *decl.ExtensionType, b MemberDeclarationsBuilder) error
}

type TypeAliasDeclarations interface {
	Macro
	BuildDeclarationsForTypeAlias(ctx context.Context, target *decl.TypeAlias, b DeclarationsBuilder) error
}

type FunctionDeclarations interface {
	Macro
	BuildDeclarationsForFunction(ctx context.Context, target *decl.Function, b DeclarationsBuilder) error
}

type VariableDeclarations interface {
	Macro
	BuildDeclarationsForVariable(ctx context.Context, target *decl.Variable, b DeclarationsBuilder) error
}

type ConstructorDeclarations interface {
	Macro
	BuildDeclarationsForConstructor(ctx context.Context, target *decl.Constructor, b MemberDeclarationsBuilder) error
}

type MethodDeclarations interface {
	Macro
	BuildDeclarationsForMethod(ctx context.Context, target *decl.Method, b MemberDeclarationsBuilder) error
}

type FieldDeclarations interface {
	Macro
	BuildDeclarationsForField(ctx context.Context, target *decl.Field, b MemberDeclarationsBuilder) error
}
