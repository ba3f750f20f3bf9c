package expand

import (
	"errors"
	"fmt"

	"loom/internal/decl"
	"loom/internal/macro"
)

// ErrUnsupported reports a (target kind, macro capability) pair with no
// dispatch case in the active phase. Reaching it means the caller's
// application-validity check let a mismatched macro through; it is a
// contract violation, not a user-facing diagnostic.
var ErrUnsupported = errors.New("unsupported macro application")

// ErrUnresolvedOwner reports a member target whose owning type
// declaration could not be resolved while constructing the builder.
var ErrUnresolvedOwner = errors.New("cannot resolve owning declaration")

func unsupported(phase macro.Phase, target decl.Decl, m macro.Macro) error {
	return fmt.Errorf("%s phase: %s target %q does not match any capability of macro %q: %w",
		phase, target.Kind(), target.Name(), macro.Name(m), ErrUnsupported)
}

func unresolvedOwner(phase macro.Phase, target decl.Decl, owner decl.Ref, cause error) error {
	return fmt.Errorf("%s phase: owner %s of %s target %q: %v: %w",
		phase, owner, target.Kind(), target.Name(), cause, ErrUnresolvedOwner)
}
