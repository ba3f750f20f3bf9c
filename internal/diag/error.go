package diag

// Error carries one Diagnostic across a call boundary as a Go error. A
// macro returns (or wraps) an *Error to deliberately report a problem and
// stop; the execution boundary unwraps it and attaches the diagnostic to
// the result verbatim.
type Error struct {
	Diagnostic Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.Message
}

// Fail wraps a diagnostic into an error for returning from a macro.
func Fail(d Diagnostic) error {
	return &Error{Diagnostic: d}
}
