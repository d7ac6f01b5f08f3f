package interpreter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/interpreter"
	"github.com/aledsdavies/lox/pkgs/lexer"
	"github.com/aledsdavies/lox/pkgs/parser"
)

// run scans, parses, and interprets source against a fresh Interpreter,
// returning captured stdout and the Reporter so tests can assert on
// compile/runtime error flags as well as output.
func run(t *testing.T, source string) (string, *diag.Reporter) {
	t.Helper()

	var stdout bytes.Buffer
	reporter := diag.New(&bytes.Buffer{}, false)

	tokens := lexer.New(source, reporter).ScanTokens()
	require.False(t, reporter.HadError, "unexpected scan error")

	statements := parser.New(tokens, reporter).Parse()
	require.False(t, reporter.HadError, "unexpected parse error")

	interp := interpreter.New(reporter, &stdout)
	interp.Interpret(statements)
	return stdout.String(), reporter
}

func TestArithmeticAndPrint(t *testing.T) {
	out, reporter := run(t, "print 1 + 2;")
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "3\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, reporter := run(t, `print "foo" + "bar";`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "foobar\n", out)
}

func TestVariableDeclarationAndAssignment(t *testing.T) {
	out, reporter := run(t, "var x = 1; x = x + 1; print x;")
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "2\n", out)
}

func TestBlockScoping(t *testing.T) {
	out, reporter := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestIfElse(t *testing.T) {
	out, reporter := run(t, `
		if (1 < 2) print "yes"; else print "no";
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "yes\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, reporter := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, reporter := run(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	out, reporter := run(t, `
		print false and undefinedName;
		print true or undefinedName;
	`)
	assert.False(t, reporter.HadRuntimeError, "the right operand must not be evaluated when short-circuited")
	assert.Equal(t, "false\ntrue\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, reporter := run(t, `
		fun add(a, b) {
			return a + b;
		}
		print add(1, 2);
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "3\n", out)
}

func TestFunctionFallsOffEndReturnsNil(t *testing.T) {
	out, reporter := run(t, `
		fun noop() {}
		print noop();
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "nil\n", out)
}

func TestRecursiveFunctionFibonacci(t *testing.T) {
	out, reporter := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "55\n", out)
}

// TestClosureCapturesDefinitionSiteEnvironment: the closure returned by
// makeCounter keeps reading and updating makeCounter's `count` across
// calls made from the global frame, which only holds if it captures its
// defining environment rather than whatever environment happens to be
// active when it is later called.
func TestClosureCapturesDefinitionSiteEnvironment(t *testing.T) {
	out, reporter := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				print count;
			}
			return increment;
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClosuresAreIndependentPerCall(t *testing.T) {
	out, reporter := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var a = makeCounter();
		var b = makeCounter();
		a();
		a();
		print a();
		print b();
	`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "3\n1\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, "print nope;")
	assert.True(t, reporter.HadRuntimeError)
}

func TestUndefinedVariableSuggestsCloseName(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	reporter := diag.New(&stderr, false)

	tokens := lexer.New("var name = 1; print nme;", reporter).ScanTokens()
	statements := parser.New(tokens, reporter).Parse()
	interp := interpreter.New(reporter, &stdout)
	interp.Interpret(statements)

	assert.True(t, reporter.HadRuntimeError)
	assert.Contains(t, stderr.String(), "Did you mean 'name'?")
}

// TestTypeMismatchIsRuntimeError is scenario 7 from spec.md §8: adding a
// number and a string is a RuntimeError (not a silent coercion).
func TestTypeMismatchIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `print 1 + "two";`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestComparisonRequiresNumbers(t *testing.T) {
	_, reporter := run(t, `print "a" < "b";`)
	assert.True(t, reporter.HadRuntimeError, "comparison operators require numeric operands")
}

func TestUnaryMinusRequiresNumber(t *testing.T) {
	_, reporter := run(t, `print -"x";`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `var x = 1; x();`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestCallingWithWrongArityIsRuntimeError(t *testing.T) {
	_, reporter := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestRuntimeErrorDoesNotPoisonSubsequentInterpretCalls(t *testing.T) {
	reporter := diag.New(&bytes.Buffer{}, false)
	var stdout bytes.Buffer
	interp := interpreter.New(reporter, &stdout)

	tokens := lexer.New("print nope;", reporter).ScanTokens()
	interp.Interpret(parser.New(tokens, reporter).Parse())
	assert.True(t, reporter.HadRuntimeError)

	reporter.Reset()
	tokens2 := lexer.New("print 1;", reporter).ScanTokens()
	interp.Interpret(parser.New(tokens2, reporter).Parse())
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "1\n", stdout.String())
}

func TestNativeClockReturnsFloat(t *testing.T) {
	out, reporter := run(t, `print clock() > 0;`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "true\n", out)
}

func TestNumberStringifiesWithoutTrailingZero(t *testing.T) {
	out, reporter := run(t, `print 10 / 2;`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "5\n", out)
}
