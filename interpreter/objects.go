package interpreter

import (
	"fmt"
	"strconv"

	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/token"
)

// loxType names a runtime object's type, as reported in error messages like "operands must be numbers, got string
// and nil".
type loxType string

const (
	typeNumber   loxType = "number"
	typeString   loxType = "string"
	typeBool     loxType = "bool"
	typeNil      loxType = "nil"
	typeFunction loxType = "function"
	typeClass    loxType = "class"
	typeInstance loxType = "instance"
)

// loxObject is any value a Lox expression can evaluate to.
type loxObject interface {
	String() string
	Type() loxType
}

// loxNumber is a Lox number, always a float64 internally. Integral values print without a decimal point.
type loxNumber float64

func (n loxNumber) String() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }
func (loxNumber) Type() loxType    { return typeNumber }

// loxString is a Lox string.
type loxString string

func (s loxString) String() string { return string(s) }
func (loxString) Type() loxType    { return typeString }

// loxBool is a Lox boolean.
type loxBool bool

func (b loxBool) String() string { return strconv.FormatBool(bool(b)) }
func (loxBool) Type() loxType    { return typeBool }

// loxNil is the single value of nil. The zero value is the only instance used.
type loxNil struct{}

func (loxNil) String() string { return "nil" }
func (loxNil) Type() loxType  { return typeNil }

// isTruthy reports whether v is truthy. Only nil and false are falsy; everything else, including 0 and "", is
// truthy.
func isTruthy(v loxObject) bool {
	switch v := v.(type) {
	case loxNil:
		return false
	case loxBool:
		return bool(v)
	default:
		return true
	}
}

// loxCallable is any Lox object which can appear as the callee of a call expression.
type loxCallable interface {
	loxObject
	Arity() int
	Call(interp *Interpreter, args []loxObject) loxObject
}

// nativeFunction wraps a Go function as a callable Lox value, used for built-ins like clock().
type nativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []loxObject) loxObject
}

func (f *nativeFunction) String() string { return fmt.Sprintf("<native fn %s>", f.name) }
func (*nativeFunction) Type() loxType    { return typeFunction }
func (f *nativeFunction) Arity() int     { return f.arity }
func (f *nativeFunction) Call(interp *Interpreter, args []loxObject) loxObject {
	return f.fn(interp, args)
}

// loxFunction is a user-defined function, method or lambda, together with the environment it closes over.
type loxFunction struct {
	decl    *ast.FunctionExpr
	closure *environment
	// isInitializer is true for a class's init method: calling it always returns the instance, regardless of any
	// explicit return statement.
	isInitializer bool
}

func (f *loxFunction) String() string {
	if f.decl.Name == nil {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}

func (*loxFunction) Type() loxType { return typeFunction }
func (f *loxFunction) Arity() int  { return len(f.decl.Params) }

// Bind returns a copy of f whose closure has "this" bound to instance. It's called when a method is looked up via a
// GetExpr, e.g. the `instance.method` in `instance.method()`.
func (f *loxFunction) Bind(instance *loxInstance) *loxFunction {
	env := newEnvironment(f.closure)
	env.Define("this", instance)
	return &loxFunction{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

func (f *loxFunction) Call(interp *Interpreter, args []loxObject) loxObject {
	env := newEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result := interp.executeBlock(f.decl.Body, env)
	if f.isInitializer {
		return f.closure.GetByName(0, "this")
	}
	if result.kind == resultReturn {
		return result.value
	}
	return loxNil{}
}

// loxClass is a class, holding its own methods and a link to its superclass, if any.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

func (c *loxClass) String() string { return c.name }
func (*loxClass) Type() loxType    { return typeClass }

func (c *loxClass) findMethod(name string) (*loxFunction, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *loxClass) Arity() int {
	if init, ok := c.findMethod(token.InitIdent); ok {
		return init.Arity()
	}
	return 0
}

func (c *loxClass) Call(interp *Interpreter, args []loxObject) loxObject {
	instance := &loxInstance{class: c, fields: map[string]loxObject{}}
	if init, ok := c.findMethod(token.InitIdent); ok {
		init.Bind(instance).Call(interp, args)
	}
	return instance
}

// loxInstance is an instance of a loxClass, holding its own fields in addition to the methods inherited from its
// class.
type loxInstance struct {
	class  *loxClass
	fields map[string]loxObject
}

func (i *loxInstance) String() string { return i.class.name + " instance" }
func (*loxInstance) Type() loxType    { return typeInstance }

func (i *loxInstance) Get(name string) (loxObject, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

func (i *loxInstance) Set(name string, value loxObject) {
	i.fields[name] = value
}

// stringify renders a value the way `print` does.
func stringify(v loxObject) string {
	return v.String()
}
