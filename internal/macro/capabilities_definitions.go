package macro

import (
	"context"

	"loom/internal/decl"
)

// Definitions-phase capabilities. Type aliases carry no body, so there
// is no alias capability in this phase and the expander rejects the
// combination outright.

type LibraryDefinition interface {
	Macro
	BuildDefinitionForLibrary(ctx context.Context, target *decl.Library, b LibraryDefinitionBuilder) error
}

type ClassDefinition interface {
	Macro
	BuildDefinitionForClass(ctx context.Context, target *decl.Class, b TypeDefinitionBuilder) error
}

type MixinDefinition interface {
	Macro
	BuildDefinitionForMixin(ctx context.Context, target *decl.Mixin, b TypeDefinitionBuilder) error
}

type EnumDefinition interface {
	Macro
	BuildDefinitionForEnum(ctx context.Context, target *decl.Enum, b EnumDefinitionBuilder) error
}

type EnumValueDefinition interface {
	Macro
	BuildDefinitionForEnumValue(ctx context.Context, target *decl.EnumValue, b EnumValueDefinitionBuilder) error
}

type ExtensionDefinition interface {
	Macro
	BuildDefinitionForExtension(ctx context.Context, target *decl.Extension, b TypeDefinitionBuilder) error
}

type ExtensionTypeDefinition interface {
	Macro
	BuildDefinitionForExtensionType(ctx context.Context, target *decl.ExtensionType, b TypeDefinitionBuilder) error
}

type FunctionDefinition interface {
	Macro
	BuildDefinitionForFunction(ctx context.Context, target *decl.Function, b FunctionDefinitionBuilder) error
}

type VariableDefinition interface {
	Macro
	BuildDefinitionForVariable(ctx context.Context, target *decl.Variable, b VariableDefinitionBuilder) error
}

type ConstructorDefinition interface {
	Macro
	BuildDefinitionForConstructor(ctx context.Context, target *decl.Constructor, b ConstructorDefinitionBuilder) error
}

type MethodDefinition interface {
	Macro
	BuildDefinitionForMethod(ctx context.Context, target *decl.Method, b FunctionDefinitionBuilder) error
}

type FieldDefinition interface {
	Macro
	BuildDefinitionForField(ctx context.Context, target *decl.Field, b VariableDefinitionBuilder) error
}
