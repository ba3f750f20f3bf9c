package macrolib

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// enumLabels gives an enum a label field: the declarations phase declares
// the field and a constructor carrying it, and the definitions phase
// rewrites each value's construction expression to pass its own name.
type enumLabels struct{}

func (enumLabels) MacroName() string { return "enumLabels" }

func (enumLabels) BuildDeclarationsForEnum(ctx context.Context, target *decl.Enum, b macro.EnumDeclarationsBuilder) error {
	values, err := b.EnumValuesOf(ctx, target.Ref())
	if err != nil {
		return err
	}
	if len(values) == 0 {
		b.Report(diag.NewWarning("enumLabels found no values to label").
			WithTarget(target.Ident()))
		return nil
	}
	b.DeclareInType(code.Raw("final String label;"))
	b.DeclareInType(code.Rawf("const %s({required this.label});", target.Name()))
	return nil
}

func (enumLabels) BuildDefinitionForEnumValue(ctx context.Context, target *decl.EnumValue, b macro.EnumValueDefinitionBuilder) error {
	owner, err := b.DeclarationOf(ctx, target.Owner())
	if err != nil {
		return err
	}
	b.AugmentValue(code.Rawf("%s(label: '%s')", owner.Name(), target.Name()))
	return nil
}
