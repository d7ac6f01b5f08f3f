package interpreter

import (
	"fmt"
	"strconv"

	"github.com/aledsdavies/lox/pkgs/token"
)

// Value is a runtime value: nil, bool, float64, string, or Callable. Go's
// interface{} already gives us the tagged union spec.md's data model
// calls for, so no separate Value wrapper type is introduced.
type Value any

// RuntimeError is the distinct control-flow event for a type mismatch,
// undefined name, bad call target, or arity mismatch. It carries the
// token whose line the diagnostic sink reports.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal is the non-local control-flow event carrying a `return`
// value from inside a function body back to its call site. It is never
// reported as an error — callers must type-assert for it before treating
// a non-nil error as a RuntimeError.
type returnSignal struct {
	Value Value
}

func (r *returnSignal) Error() string { return "return" }

// isTruthy implements the language's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements ==: nil only equals nil, otherwise primitive
// equality on the dynamic type (numbers compare by IEEE-754 equality,
// no special NaN handling).
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value the way `print` does.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return s
	case string:
		return val
	case Callable:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
