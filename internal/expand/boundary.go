package expand

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"loom/internal/diag"
	"loom/internal/macro"
)

// bugMessage is the fixed primary text of the diagnostic synthesized for
// an unclassified macro failure.
const bugMessage = "macro failed due to a bug in the macro implementation"

// invoke runs the selected augmentation method under the failure
// boundary. This is the only place the core catches anything: dispatch
// and builder construction run before it and fail fatally. Whatever
// goes wrong inside (a deliberate report, a propagated framework failure,
// a returned error, a panic) ends up recorded on the state, and the
// executor proceeds to extract a result.
func invoke(ctx context.Context, st *state, run func(context.Context) error) {
	err, stack := runGuarded(ctx, run)
	if err == nil {
		return
	}
	st.classify(err, stack)
}

// runGuarded executes run, converting panics into errors. The returned
// stack is captured where the failure was observed: inside the recover
// for panics, at the boundary for returned errors.
func runGuarded(ctx context.Context, run func(context.Context) error) (err error, stack []byte) {
	defer func() {
		if r := recover(); r != nil {
			stack = debug.Stack()
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err = run(ctx); err != nil {
		stack = debug.Stack()
	}
	return err, stack
}

// classify sorts one abnormal outcome into the three recoverable classes.
// Deliberate reports win over framework failures when both are present in
// the error chain; anything unrecognized is a bug in the macro.
func (st *state) classify(err error, stack []byte) {
	var de *diag.Error
	if errors.As(err, &de) {
		st.diags = append(st.diags, de.Diagnostic)
		return
	}
	var mf *macro.Failure
	if errors.As(err, &mf) {
		st.failure = mf
		return
	}
	st.diags = append(st.diags, bugDiagnostic(st.macroName, err, stack))
}

func bugDiagnostic(macroName string, err error, stack []byte) diag.Diagnostic {
	return diag.NewError(bugMessage).
		WithContext(fmt.Sprintf("%v\n%s", err, stack)).
		WithCorrection(fmt.Sprintf("report this issue to the author of the %s macro", macroName))
}
