package macrolib

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// dataInterface introduces a <Class>Data companion interface during the
// types phase and appends it to the class's implements clause.
type dataInterface struct{}

func (dataInterface) MacroName() string { return "dataInterface" }

func (dataInterface) BuildTypesForClass(ctx context.Context, target *decl.Class, b macro.IdentifiedTypesBuilder) error {
	name := target.Name() + "Data"
	if _, err := b.ResolveIdentifier(ctx, target.Library(), name); err == nil {
		b.Report(diag.NewWarning("dataInterface companion "+name+" already exists").
			WithTarget(target.Ident()))
		return nil
	}
	b.DeclareType(name, code.Rawf("abstract interface class %s {}", name))
	b.AppendInterfaces(code.Raw(name))
	return nil
}
