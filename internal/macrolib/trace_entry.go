package macrolib

import (
	"context"

	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// traceEntry wraps function and method bodies with an entry trace call.
type traceEntry struct{}

func (traceEntry) MacroName() string { return "traceEntry" }

func (traceEntry) BuildDefinitionForFunction(ctx context.Context, target *decl.Function, b macro.FunctionDefinitionBuilder) error {
	b.AugmentBody(code.Rawf("{ trace('%s'); return augmented(); }", target.Name()))
	return nil
}

func (traceEntry) BuildDefinitionForMethod(ctx context.Context, target *decl.Method, b macro.FunctionDefinitionBuilder) error {
	if target.Getter() || target.Setter() {
		b.Report(diag.NewWarning("traceEntry does not trace accessors").
			WithTarget(target.Ident()))
		return nil
	}
	owner, err := b.DeclarationOf(ctx, target.Owner())
	if err != nil {
		return err
	}
	b.AugmentBody(code.Rawf("{ trace('%s.%s'); return augmented(); }", owner.Name(), target.Name()))
	return nil
}
