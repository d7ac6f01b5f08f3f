// Package ast defines the expression and statement nodes produced by the
// parser and walked by the interpreter.
package ast

import "github.com/aledsdavies/lox/pkgs/token"

// Expr is the sum type over expression nodes. Each variant below
// implements it; the interpreter switches exhaustively over the concrete
// type — adding a variant means touching every switch.
type Expr interface {
	exprNode()
}

// Stmt is the sum type over statement nodes.
type Stmt interface {
	stmtNode()
}

// Literal is a constant value: a number, string, boolean, or nil.
type Literal struct {
	Value any
}

// Grouping is a parenthesized expression, kept distinct from its inner
// expression purely for source fidelity (evaluation is a pass-through).
type Grouping struct {
	Inner Expr
}

// Unary is a prefix operator application: !expr or -expr.
type Unary struct {
	Op      token.Token
	Operand Expr
}

// Binary is a non-short-circuiting infix operator application:
// arithmetic, comparison, or equality.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Logical is `and`/`or`. Kept distinct from Binary because its right
// operand is conditionally evaluated.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Variable is a name reference, resolved dynamically against the
// environment chain at evaluation time.
type Variable struct {
	Name token.Token
}

// Assign is `name = value`, evaluating to the assigned value.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Call is `callee(args...)`. Paren is retained solely so runtime errors
// about the call (wrong arity, non-callable) can report a line.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt evaluates an expression and writes its stringified form.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares a name in the current frame, optionally initialized.
// Init is nil when the declaration has no initializer (value is nil).
type VarStmt struct {
	Name token.Token
	Init Expr
}

// BlockStmt is a `{ ... }` sequence, executed in a freshly pushed frame.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt is `if (cond) then [else else]`. Else is nil when absent.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// WhileStmt is `while (cond) body`, also the desugared target of `for`.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt declares a named function in the current frame.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt unwinds to the nearest enclosing call with Value (nil when
// the `return` has no expression).
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
