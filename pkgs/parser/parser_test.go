package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/lox/pkgs/ast"
	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/lexer"
	"github.com/aledsdavies/lox/pkgs/parser"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *diag.Reporter) {
	t.Helper()
	reporter := diag.New(&bytes.Buffer{}, false)
	tokens := lexer.New(source, reporter).ScanTokens()
	require.False(t, reporter.HadError, "unexpected scan error")
	return parser.New(tokens, reporter).Parse(), reporter
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	stmts, reporter := parse(t, "var x = 1 + 2;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Lexeme)
	_, ok = v.Init.(*ast.Binary)
	assert.True(t, ok, "initializer should parse as a Binary expression")
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	stmts, reporter := parse(t, "var x;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	v := stmts[0].(*ast.VarStmt)
	assert.Nil(t, v.Init)
}

func TestParseAssignmentTargetMustBeVariable(t *testing.T) {
	_, reporter := parse(t, "1 = 2;")
	assert.True(t, reporter.HadError, "assigning to a non-variable target must report an error")
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, reporter := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok, "for with an initializer desugars to an outer block")
	require.Len(t, outer.Statements, 2)

	_, ok = outer.Statements[0].(*ast.VarStmt)
	assert.True(t, ok, "first statement in the desugared block is the initializer")

	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	require.True(t, ok, "second statement is the desugared while loop")

	body, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok, "a for with an increment wraps the body in an inner block")
	require.Len(t, body.Statements, 2)
}

func TestParseForWithoutConditionDefaultsTrue(t *testing.T) {
	stmts, reporter := parse(t, "for (;;) print 1;")
	require.False(t, reporter.HadError)

	whileStmt := stmts[0].(*ast.WhileStmt)
	lit, ok := whileStmt.Condition.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts, reporter := parse(t, "fun add(a, b) { return a + b; }")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	fn := stmts[0].(*ast.FunctionStmt)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Lexeme)
	assert.Equal(t, "b", fn.Params[1].Lexeme)
	require.Len(t, fn.Body, 1)
}

func TestParseTooManyArgumentsReportsErrorWithoutPanicking(t *testing.T) {
	source := "foo("
	for i := 0; i < 256; i++ {
		if i > 0 {
			source += ","
		}
		source += "1"
	}
	source += ");"

	assert.NotPanics(t, func() {
		_, reporter := parse(t, source)
		assert.True(t, reporter.HadError)
	})
}

func TestParseSynchronizeAfterErrorRecoversNextStatement(t *testing.T) {
	stmts, reporter := parse(t, "var ; print 1;")
	assert.True(t, reporter.HadError)
	require.Len(t, stmts, 1, "parsing should resume after the broken var declaration")

	_, ok := stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)
}

func TestParsePrecedence(t *testing.T) {
	stmts, reporter := parse(t, "1 + 2 * 3;")
	require.False(t, reporter.HadError)

	exprStmt := stmts[0].(*ast.ExpressionStmt)
	bin := exprStmt.Expr.(*ast.Binary)

	_, leftIsLiteral := bin.Left.(*ast.Literal)
	assert.True(t, leftIsLiteral, "+ should bind 1 directly, not (1 + 2)")

	_, rightIsBinary := bin.Right.(*ast.Binary)
	assert.True(t, rightIsBinary, "* should bind tighter than +, grouping 2 * 3 on the right")
}
