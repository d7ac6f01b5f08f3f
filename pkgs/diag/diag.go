// Package diag implements the interpreter's diagnostic sink: the single
// place compile errors (scanner/parser) and runtime errors (evaluator)
// are reported to, matching the two line-oriented stderr formats the
// language defines.
package diag

import (
	"fmt"
	"io"

	"github.com/aledsdavies/lox/pkgs/token"
)

// Reporter is the diagnostic sink. A single Reporter is shared across a
// scan/parse/interpret pipeline; HadError and HadRuntimeError let the
// driver decide whether to hand a program to the evaluator, and what
// process exit code to use.
type Reporter struct {
	w        io.Writer
	useColor bool

	HadError        bool
	HadRuntimeError bool
}

// New creates a Reporter writing compile and runtime diagnostics to w.
func New(w io.Writer, useColor bool) *Reporter {
	return &Reporter{w: w, useColor: useColor}
}

// Reset clears both had-error flags, used between independent top-level
// runs (each REPL line gets a fresh slate).
func (r *Reporter) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
}

// Error reports a scanner-detected error with no specific token (e.g. an
// unterminated string or unexpected character) at the given line.
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAtToken reports a parser-detected error located at tok.
func (r *Reporter) ErrorAtToken(tok token.Token, message string) {
	if tok.Type == token.EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
	}
}

func (r *Reporter) report(line int, where, message string) {
	label := Colorize("Error"+where, colorRed, r.useColor)
	fmt.Fprintf(r.w, "[line %d] %s: %s\n", line, label, message)
	r.HadError = true
}

// RuntimeError reports a runtime error at the given line. message should
// already include any "Did you mean '...'?" suggestion suffix.
func (r *Reporter) RuntimeError(message string, line int) {
	fmt.Fprintf(r.w, "%s\n%s\n", message, Colorize(fmt.Sprintf("[line %d]", line), colorGray, r.useColor))
	r.HadRuntimeError = true
}
