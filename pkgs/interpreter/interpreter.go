// Package interpreter walks the AST produced by the parser against a
// chain of lexically-scoped Environment frames, producing side effects
// (print output, runtime errors).
package interpreter

import (
	"fmt"
	"io"

	"github.com/aledsdavies/lox/pkgs/ast"
	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/token"
)

// Interpreter executes statement lists against its environment chain. It
// is reusable across independent top-level Interpret calls — a runtime
// error aborts only the call in progress, matching the REPL's need for
// one bad line to not poison the session.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	reporter *diag.Reporter
	stdout   io.Writer
}

// New creates an Interpreter whose global frame has the native `clock`
// function installed, writing `print` output to stdout and runtime
// errors to reporter.
func New(reporter *diag.Reporter, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", nativeClock{})
	return &Interpreter{globals: globals, env: globals, reporter: reporter, stdout: stdout}
}

// Interpret executes statements in order. On the first runtime error it
// reports it to the diagnostic sink and aborts — statements after the
// failing one are not executed — but the Interpreter remains usable for
// a subsequent Interpret call.
func (i *Interpreter) Interpret(statements []ast.Stmt) {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				i.reporter.RuntimeError(rerr.Message, rerr.Token.Line)
			}
			return
		}
	}
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, stringify(v))
		return nil

	case *ast.VarStmt:
		var value Value
		if s.Init != nil {
			v, err := i.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnvironment(i.env))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		i.env.Define(s.Name.Lexeme, &Function{Decl: s, Closure: i.env})
		return nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}

	default:
		return fmt.Errorf("interpreter: unhandled statement type %T", stmt)
	}
}

// executeBlock runs statements under env, restoring the previously active
// frame on every exit path — normal completion, a RuntimeError, or a
// returnSignal unwinding through it.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return i.evaluate(e.Inner)

	case *ast.Unary:
		return i.evaluateUnary(e)

	case *ast.Binary:
		return i.evaluateBinary(e)

	case *ast.Logical:
		return i.evaluateLogical(e)

	case *ast.Variable:
		return i.env.Get(e.Name)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Call:
		return i.evaluateCall(e)

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression type %T", expr)
	}
}

func (i *Interpreter) evaluateUnary(e *ast.Unary) (Value, error) {
	operand, err := i.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.BANG:
		return !isTruthy(operand), nil
	case token.MINUS:
		n, ok := operand.(float64)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	default:
		return nil, newRuntimeError(e.Op, "Unknown unary operator '%s'.", e.Op.Lexeme)
	}
}

func (i *Interpreter) evaluateLogical(e *ast.Logical) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.OR:
		if isTruthy(left) {
			return left, nil
		}
	case token.AND:
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil

	case token.GREATER:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln > rn, nil

	case token.GREATER_EQUAL:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln >= rn, nil

	case token.LESS:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln < rn, nil

	case token.LESS_EQUAL:
		ln, rn, err := i.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln <= rn, nil

	case token.BANG_EQUAL:
		return !isEqual(left, right), nil

	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil

	default:
		return nil, newRuntimeError(e.Op, "Unknown binary operator '%s'.", e.Op.Lexeme)
	}
}

// numberOperands requires both operands to be numbers, as every
// arithmetic/comparison operator other than `+` does.
func (i *Interpreter) numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (i *Interpreter) evaluateCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	var args []Value
	for _, argExpr := range e.Args {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.%s", i.callSuggestion(e.Callee))
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(i, args)
}

// callSuggestion offers a "Did you mean" hint when a call target is a
// plain identifier that resolves to something other than a function.
func (i *Interpreter) callSuggestion(callee ast.Expr) string {
	v, ok := callee.(*ast.Variable)
	if !ok {
		return ""
	}
	match, ok := suggestClosestCallable(i.env, v.Name.Lexeme)
	if !ok {
		return ""
	}
	return " Did you mean '" + match + "'?"
}
