package interpreter

import (
	"fmt"

	"github.com/dhawkins-dev/golox/token"
)

// environment holds the variable bindings in effect at one lexical scope, chained to its enclosing scope.
type environment struct {
	parent *environment
	values map[string]loxObject
}

func newEnvironment(parent *environment) *environment {
	return &environment{parent: parent, values: make(map[string]loxObject)}
}

// Define binds name to value in this environment, overwriting any existing binding. Unlike Assign, this never
// fails: it's how a new `var` declaration or function parameter enters scope.
func (e *environment) Define(name string, value loxObject) {
	e.values[name] = value
}

// Assign sets the value of an already-declared variable, searching outward through enclosing scopes. It panics
// with a *runtimeError if name was never declared.
func (e *environment) Assign(name token.Token, value loxObject) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return
		}
	}
	panic(newRuntimeError(name, "undefined variable %q", name.Lexeme))
}

// AssignAt sets the value of a variable known (from resolution) to be exactly distance scopes up the chain.
func (e *environment) AssignAt(distance int, name token.Token, value loxObject) {
	e.ancestor(distance).values[name.Lexeme] = value
}

// Get looks up name, searching outward through enclosing scopes. It panics with a *runtimeError if it's undefined.
func (e *environment) Get(name token.Token) loxObject {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v
		}
	}
	panic(newRuntimeError(name, "undefined variable %q", name.Lexeme))
}

// GetAt returns the value of a variable known (from resolution) to be exactly distance scopes up the chain.
func (e *environment) GetAt(distance int, name token.Token) loxObject {
	return e.ancestor(distance).values[name.Lexeme]
}

// GetByName looks up an identifier which didn't originate from a resolved token, such as the implicit "this" or
// "super" bindings installed when a method is bound.
func (e *environment) GetByName(distance int, name string) loxObject {
	env := e.ancestor(distance)
	v, ok := env.values[name]
	if !ok {
		panic(fmt.Sprintf("interpreter: %s not bound in environment", name))
	}
	return v
}

func (e *environment) ancestor(distance int) *environment {
	env := e
	for range distance {
		env = env.parent
	}
	return env
}
