package expand

import (
	"context"
	"fmt"

	"loom/internal/decl"
	"loom/internal/macro"
)

// Execute runs the executor for the given phase. It is a convenience for
// drivers that iterate phase schedules; callers holding a concrete phase
// can call the per-phase executors directly.
func Execute(ctx context.Context, phase macro.Phase, m macro.Macro, target decl.Decl, in decl.DefinitionIntrospector) (*Result, error) {
	switch phase {
	case macro.PhaseTypes:
		return ExecuteTypesMacro(ctx, m, target, in)
	case macro.PhaseDeclarations:
		return ExecuteDeclarationsMacro(ctx, m, target, in)
	case macro.PhaseDefinitions:
		return ExecuteDefinitionMacro(ctx, m, target, in)
	}
	return nil, fmt.Errorf("unknown expansion phase %d", phase)
}
