package diag

import "loom/internal/decl"

// Context is a secondary message attached to a diagnostic, optionally
// pointing at another declaration.
type Context struct {
	Msg    string
	Target *decl.Ident
}

// Diagnostic is a structured, user-facing finding produced during macro
// expansion. It is a data value, never an exception: recoverable failures
// end up as Diagnostics on an execution result.
type Diagnostic struct {
	Severity   Severity
	Message    string
	Target     *decl.Ident
	Contexts   []Context
	Correction string
}

// New constructs a diagnostic with the given severity and message.
func New(sev Severity, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Message: msg}
}

// NewError constructs an error-severity diagnostic.
func NewError(msg string) Diagnostic {
	return New(SevError, msg)
}

// NewWarning constructs a warning-severity diagnostic.
func NewWarning(msg string) Diagnostic {
	return New(SevWarning, msg)
}

// WithTarget attributes the diagnostic to a declaration.
func (d Diagnostic) WithTarget(ident decl.Ident) Diagnostic {
	d.Target = &ident
	return d
}

// WithContext appends a secondary message.
func (d Diagnostic) WithContext(msg string) Diagnostic {
	d.Contexts = append(d.Contexts, Context{Msg: msg})
	return d
}

// WithContextAt appends a secondary message pointing at a declaration.
func (d Diagnostic) WithContextAt(msg string, ident decl.Ident) Diagnostic {
	d.Contexts = append(d.Contexts, Context{Msg: msg, Target: &ident})
	return d
}

// WithCorrection sets the suggested user action.
func (d Diagnostic) WithCorrection(msg string) Diagnostic {
	d.Correction = msg
	return d
}
