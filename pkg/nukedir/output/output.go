// Package output implements the categorized status reporter for nukedir.
// Messages fall into four categories, each with a single-character marker
// and a distinct color on interactive terminals:
//
//	ℹ  informational
//	⚠  warning
//	✓  success
//	✗  error
//
// All categories write to the error stream so that nothing interleaves with
// data a caller might pipe from stdout. Quiet mode suppresses everything
// except errors.
package output

import (
	"fmt"
	"io"
)

// Category markers.
const (
	markInfo    = "ℹ"
	markWarning = "⚠"
	markSuccess = "✓"
	markError   = "✗"
)

// Reporter emits tagged status lines for one run.
type Reporter struct {
	w       io.Writer
	program string
	quiet   bool
}

// NewReporter returns a Reporter writing to w. The program name prefixes
// error lines so failures remain attributable in pipelines.
func NewReporter(w io.Writer, program string, quiet bool) *Reporter {
	return &Reporter{w: w, program: program, quiet: quiet}
}

// Quiet reports whether informational output is suppressed.
func (r *Reporter) Quiet() bool {
	return r.quiet
}

// Infof emits an informational line unless quiet mode is active.
func (r *Reporter) Infof(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", InfoStyle.Render(markInfo), fmt.Sprintf(format, args...))
}

// Warnf emits a warning line unless quiet mode is active.
func (r *Reporter) Warnf(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", WarningStyle.Render(markWarning), fmt.Sprintf(format, args...))
}

// Successf emits a completion line unless quiet mode is active.
func (r *Reporter) Successf(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", SuccessStyle.Render(markSuccess), fmt.Sprintf(format, args...))
}

// Errorf emits an error line. Errors are never suppressed.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s: %s\n", ErrorStyle.Render(markError), r.program, fmt.Sprintf(format, args...))
}
