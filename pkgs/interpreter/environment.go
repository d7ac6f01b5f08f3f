package interpreter

import (
	"github.com/aledsdavies/lox/pkgs/suggest"
	"github.com/aledsdavies/lox/pkgs/token"
)

// Environment is a scope frame: a name-to-value mapping with an optional
// enclosing frame. The chain is acyclic and terminates at the global
// frame (enclosing == nil).
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a frame whose parent is enclosing (nil for the
// global frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: enclosing}
}

// Define unconditionally installs v under name in this frame, overwriting
// any existing binding — `var` redeclaration in the same frame is
// permitted.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get resolves name.Lexeme by walking the chain outward from this frame.
// An unresolved name raises a RuntimeError, optionally carrying a
// "Did you mean" suggestion drawn from every name reachable from this
// frame.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, newRuntimeError(name, "Undefined variable '%s'.%s", name.Lexeme, e.suggestionSuffix(name.Lexeme))
}

// Assign resolves name.Lexeme by walking the chain and overwrites the
// first binding found. It fails — it never defines — if the name is not
// already bound somewhere on the chain.
func (e *Environment) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return newRuntimeError(name, "Undefined variable '%s'.%s", name.Lexeme, e.suggestionSuffix(name.Lexeme))
}

// Names returns every name reachable from this frame, walking outward to
// the global frame. Used only to build suggestion candidate lists.
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.enclosing {
		for name := range env.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// CallableNames returns every name reachable from this frame whose bound
// value is a Callable. Used to suggest corrections for "not callable"
// errors.
func (e *Environment) CallableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.enclosing {
		for name, v := range env.values {
			if _, ok := v.(Callable); ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func (e *Environment) suggestionSuffix(name string) string {
	if match, ok := suggest.Closest(name, e.Names()); ok {
		return " Did you mean '" + match + "'?"
	}
	return ""
}

// suggestClosestCallable returns the closest-spelled callable name in
// env's chain to name, if any is close enough to be a plausible typo.
func suggestClosestCallable(env *Environment, name string) (string, bool) {
	return suggest.Closest(name, env.CallableNames())
}
