package macro

import "fmt"

// Phase is one of the three ordered expansion stages.
type Phase uint8

const (
	// PhaseTypes lets macros introduce new type names.
	PhaseTypes Phase = iota
	// PhaseDeclarations lets macros introduce new member and top-level
	// declarations.
	PhaseDeclarations
	// PhaseDefinitions lets macros fill in bodies of existing
	// declarations.
	PhaseDefinitions

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseTypes:
		return "types"
	case PhaseDeclarations:
		return "declarations"
	case PhaseDefinitions:
		return "definitions"
	}
	return "unknown"
}

// ParsePhase converts a phase name to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "types":
		return PhaseTypes, nil
	case "declarations", "decls":
		return PhaseDeclarations, nil
	case "definitions", "defs":
		return PhaseDefinitions, nil
	}
	return phaseCount, fmt.Errorf("unknown phase: %q (expected: types|declarations|definitions)", s)
}

// Phases returns the phases in execution order.
func Phases() []Phase {
	return []Phase{PhaseTypes, PhaseDeclarations, PhaseDefinitions}
}
