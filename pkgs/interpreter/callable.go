package interpreter

import (
	"time"

	"github.com/aledsdavies/lox/pkgs/ast"
)

// Callable is any runtime value that can appear as the target of a call
// expression.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
	String() string
}

// nativeClock is the global `clock` function: arity 0, returns wall-clock
// seconds as a float64.
type nativeClock struct{}

func (nativeClock) Arity() int { return 0 }

func (nativeClock) Call(*Interpreter, []Value) (Value, error) {
	return float64(time.Now().UnixNano()) / 1e9, nil
}

func (nativeClock) String() string { return "<native fn clock>" }

// Function is a user-defined function. It retains the environment active
// at its definition site (Closure) — not the environment active when it
// is called — so closures capture lexically, as spec.md §9 requires.
type Function struct {
	Decl    *ast.FunctionStmt
	Closure *Environment
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call creates a fresh frame parented on the closure, binds parameters to
// args, and executes the body. A `return` unwinds via returnSignal and
// yields its value; falling off the end of the body yields nil.
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.executeBlock(f.Decl.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return nil, nil
}

func (f *Function) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }
