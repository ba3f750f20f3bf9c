package macro

import (
	"context"

	"loom/internal/decl"
)

// Types-phase capabilities. A macro opts into a target kind by
// implementing the matching interface; the expander probes with a type
// assertion and fails the combination when the assertion misses.

type LibraryTypes interface {
	Macro
	BuildTypesForLibrary(ctx context.Context, target *decl.Library, b TypesBuilder) error
}

type ClassTypes interface {
	Macro
	BuildTypesForClass(ctx context.Context, target *decl.Class, b IdentifiedTypesBuilder) error
}

type MixinTypes interface {
	Macro
	BuildTypesForMixin(ctx context.Context, target *decl.Mixin, b IdentifiedTypesBuilder) error
}

type EnumTypes interface {
	Macro
	BuildTypesForEnum(ctx context.Context, target *decl.Enum, b IdentifiedTypesBuilder) error
}

type EnumValueTypes interface {
	Macro
	BuildTypesForEnumValue(ctx context.Context, target *decl.EnumValue, b TypesBuilder) error
}

type ExtensionTypes interface {
	Macro
	BuildTypesForExtension(ctx context.Context, target *decl.Extension, b TypesBuilder) error
}

type ExtensionTypeTypes interface {
	Macro
	BuildTypesForExtensionType(ctx context.Context, target *decl.ExtensionType, b TypesBuilder) error
}

type TypeAliasTypes interface {
	Macro
	BuildTypesForTypeAlias(ctx context.Context, target *decl.TypeAlias, b TypesBuilder) error
}

type FunctionTypes interface {
	Macro
	BuildTypesForFunction(ctx context.Context, target *decl.Function, b TypesBuilder) error
}

type VariableTypes interface {
	Macro
	BuildTypesForVariable(ctx context.Context, target *decl.Variable, b TypesBuilder) error
}

type ConstructorTypes interface {
	Macro
	BuildTypesForConstructor(ctx context.Context, target *decl.Constructor, b TypesBuilder) error
}

type MethodTypes interface {
	Macro
	BuildTypesForMethod(ctx context.Context, target *decl.Method, b TypesBuilder) error
}

type FieldTypes interface {
	Macro
	BuildTypesForField(ctx context.Context, target *decl.Field, b TypesBuilder) error
}
