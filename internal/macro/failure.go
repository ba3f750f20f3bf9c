package macro

import "fmt"

// Failure represents a framework-level execution failure raised beneath a
// macro: introspection breakage, host protocol faults, anything that is
// not the macro's own doing. The execution boundary preserves a Failure's
// identity instead of re-wrapping it, so consumers can tell "the macro
// reported a problem" apart from "something under the macro broke".
type Failure struct {
	// Op names the operation that failed, e.g. "FieldsOf".
	Op string
	// Err is the underlying cause, if any.
	Err error
	// Msg is used when there is no underlying error value.
	Msg string
}

func (f *Failure) Error() string {
	switch {
	case f.Err != nil && f.Op != "":
		return fmt.Sprintf("macro execution failed in %s: %v", f.Op, f.Err)
	case f.Err != nil:
		return fmt.Sprintf("macro execution failed: %v", f.Err)
	case f.Op != "":
		return fmt.Sprintf("macro execution failed in %s: %s", f.Op, f.Msg)
	}
	return "macro execution failed: " + f.Msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Failf constructs a Failure for op with a formatted message.
func Failf(op, format string, args ...any) *Failure {
	return &Failure{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// FailOp wraps an underlying error as a Failure in op.
func FailOp(op string, err error) *Failure {
	return &Failure{Op: op, Err: err}
}
