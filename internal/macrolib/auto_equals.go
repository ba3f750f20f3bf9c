package macrolib

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// autoEquals derives structural equality for a class: an operator== that
// compares every introspected field plus a matching hashCode.
type autoEquals struct{}

func (autoEquals) MacroName() string { return "autoEquals" }

func (autoEquals) BuildDeclarationsForClass(ctx context.Context, target *decl.Class, b macro.MemberDeclarationsBuilder) error {
	fields, err := b.FieldsOf(ctx, target.Ref())
	if err != nil {
		return err
	}
	var compared []*decl.Field
	for _, f := range fields {
		if !f.Static() {
			compared = append(compared, f)
		}
	}
	if len(compared) == 0 {
		b.Report(diag.NewWarning("autoEquals found no instance fields to compare").
			WithTarget(target.Ident()).
			WithCorrection("remove the macro or declare at least one field"))
		return nil
	}

	comparisons := make([]code.Code, 0, len(compared))
	hashed := make([]code.Code, 0, len(compared))
	for _, f := range compared {
		comparisons = append(comparisons, code.Rawf("%s == other.%s", f.Name(), f.Name()))
		hashed = append(hashed, code.Raw(f.Name()))
	}

	b.DeclareInType(code.Join(
		code.Rawf("bool operator ==(Object other) => other is %s && ", target.Name()),
		code.JoinSep(" && ", comparisons...),
		code.Raw(";"),
	))
	b.DeclareInType(code.Join(
		code.Raw("int get hashCode => Object.hashAll(["),
		code.JoinSep(", ", hashed...),
		code.Raw("]);"),
	))
	return nil
}
