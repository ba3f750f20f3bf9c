package macrolib

import (
	"context"
	"strings"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// observable turns a private backing field into a change-notifying
// property: the declarations phase declares the public getter/setter
// pair, the definitions phase fills their bodies around the field.
type observable struct{}

func (observable) MacroName() string { return "observable" }

func (o observable) BuildDeclarationsForField(ctx context.Context, target *decl.Field, b macro.MemberDeclarationsBuilder) error {
	public, ok := o.publicName(target)
	if !ok {
		b.Report(diag.NewWarning("observable expects a private backing field").
			WithTarget(target.Ident()).
			WithCorrection("rename the field to start with an underscore"))
		return nil
	}
	typ := "dynamic"
	if !target.Type().IsZero() {
		typ = target.Type().String()
	}
	b.DeclareInType(code.Rawf("%s get %s;", typ, public))
	b.DeclareInType(code.Rawf("set %s(%s value);", public, typ))
	return nil
}

func (o observable) BuildDefinitionForField(ctx context.Context, target *decl.Field, b macro.VariableDefinitionBuilder) error {
	public, ok := o.publicName(target)
	if !ok {
		b.Report(diag.NewWarning("observable expects a private backing field").
			WithTarget(target.Ident()).
			WithCorrection("rename the field to start with an underscore"))
		return nil
	}
	b.AugmentGetter(code.Rawf("=> %s;", target.Name()))
	b.AugmentSetter(code.Join(
		code.Rawf("{ %s = value; notifyChange('", target.Name()),
		code.Raw(public),
		code.Raw("'); }"),
	))
	return nil
}

func (observable) publicName(f *decl.Field) (string, bool) {
	name := strings.TrimPrefix(f.Name(), "_")
	if name == f.Name() || name == "" {
		return "", false
	}
	return name, true
}
