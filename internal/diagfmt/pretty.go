package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"loom/internal/diag"
	"loom/internal/expand"
)

// Pretty renders diagnostics in a human-readable form, one per block:
//
//	<SEVERITY> <target>: <message>
//	    note: <context> (at <target>)
//	    help: <correction>
//
// It walks bag.Items() as is; callers wanting stable output sort the bag
// first. Color is applied per severity when enabled.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	head := severityLabel(d.Severity, opts.Color)
	if d.Target != nil {
		head += " " + d.Target.String()
	}
	writeLine(w, head+": "+d.Message, opts.Width)

	if opts.ShowContexts {
		for _, c := range d.Contexts {
			suffix := ""
			if c.Target != nil {
				suffix = " (at " + c.Target.String() + ")"
			}
			// Multiline contexts (e.g. backtraces) keep their shape,
			// every line indented.
			lines := strings.Split(c.Msg, "\n")
			writeLine(w, "    note: "+lines[0]+suffix, opts.Width)
			for _, line := range lines[1:] {
				writeLine(w, "    "+line, opts.Width)
			}
		}
	}
	if opts.ShowCorrections && d.Correction != "" {
		writeLine(w, "    help: "+d.Correction, opts.Width)
	}
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	c := infoColor
	switch sev {
	case diag.SevError:
		c = errorColor
	case diag.SevWarning:
		c = warningColor
	}
	// Explicit opt-in wins over the package's TTY detection, so piped
	// output honours --color=on.
	c.EnableColor()
	return c.Sprint(sev.String())
}

// writeLine emits one line, truncated to width when set. Styled severity
// labels carry escape sequences, so truncation measures display cells via
// runewidth rather than bytes.
func writeLine(w io.Writer, line string, width int) {
	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width-3, "...")
	}
	fmt.Fprintln(w, line)
}

// RenderResult lists one execution's artifacts, one line each:
//
//	+ type <name>: <code>
//	~ <slot>(<owner>): <code>
//	+ <placement>(<owner>): <code>
//	~ <slot>(<target>): <code>
//
// Added artifacts get "+", edits to existing declarations get "~".
func RenderResult(w io.Writer, r *expand.Result, opts PrettyOpts) {
	for _, nt := range r.NewTypes {
		writeLine(w, "+ type "+nt.Name+": "+nt.Code.String(), opts.Width)
	}
	for _, se := range r.TypeShapeEdits {
		parts := make([]string, len(se.Parts))
		for i, p := range se.Parts {
			parts[i] = p.String()
		}
		writeLine(w, fmt.Sprintf("~ %s(%s): %s", se.Slot, se.Owner, strings.Join(parts, ", ")), opts.Width)
	}
	for _, pc := range r.Declarations {
		writeLine(w, fmt.Sprintf("+ %s(%s): %s", pc.Placement, pc.Owner, pc.Code.String()), opts.Width)
	}
	for _, a := range r.Augmentations {
		body := a.Code.String()
		if len(a.Parts) > 0 {
			parts := make([]string, len(a.Parts))
			for i, p := range a.Parts {
				parts[i] = p.String()
			}
			body = strings.Join(parts, ", ")
		}
		writeLine(w, fmt.Sprintf("~ %s(%s): %s", a.Slot, a.Target, body), opts.Width)
	}
}
