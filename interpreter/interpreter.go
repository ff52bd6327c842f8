// Package interpreter implements a tree-walking evaluator for Lox programs.
package interpreter

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/loxerr"
	"github.com/dhawkins-dev/golox/token"
)

// Interpreter executes a resolved Lox program, maintaining global state between calls so that a REPL session can
// build on previous input.
type Interpreter struct {
	globals  *environment
	locals   map[token.Token]int
	stdout   io.Writer
	replEcho bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects the output of `print` statements. It defaults to [os.Stdout].
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithREPLEcho makes Interpret print the value of every top-level bare expression statement, the way a REPL echoes
// whatever you type at its prompt. It has no effect on expression statements nested inside a block, function or
// loop.
func WithREPLEcho() Option {
	return func(i *Interpreter) { i.replEcho = true }
}

// New constructs an Interpreter.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals: globals(),
		locals:  map[token.Token]int{},
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// runtimeError is the panic value raised by every runtime error. It unwinds the Go call stack back up to Interpret,
// where it's turned into a returned error.
type runtimeError struct {
	line int
	msg  string
}

func newRuntimeError(tok token.Token, format string, args ...any) *runtimeError {
	return &runtimeError{line: tok.Line, msg: fmt.Sprintf(format, args...)}
}

func newRuntimeErrorAtLine(line int, format string, args ...any) *runtimeError {
	return &runtimeError{line: line, msg: fmt.Sprintf(format, args...)}
}

func (e *runtimeError) Error() string {
	return loxerr.New(e.line, e.msg).Error()
}

// Interpret executes program, using locals (as returned by resolver.Resolve) to look up local variables. Locals
// passed to a previous call are retained, so that a REPL session which defines a variable in one call can refer to it
// in the next.
func (i *Interpreter) Interpret(locals map[token.Token]int, program *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rtErr, ok := r.(*runtimeError); ok {
				err = rtErr
				return
			}
			panic(r)
		}
	}()
	for tok, distance := range locals {
		i.locals[tok] = distance
	}
	for _, stmt := range program.Stmts {
		if exprStmt, ok := stmt.(*ast.ExpressionStmt); ok && i.replEcho {
			fmt.Fprintln(i.stdout, stringify(i.evalExpr(i.globals, exprStmt.Expr)))
			continue
		}
		i.execStmt(i.globals, stmt)
	}
	return nil
}

// stmtResultKind distinguishes the ways that executing a statement can affect control flow in an enclosing loop or
// function, without resorting to panic/recover for ordinary, non-erroneous control flow.
type stmtResultKind int

const (
	resultNone stmtResultKind = iota
	resultBreak
	resultContinue
	resultReturn
)

type stmtResult struct {
	kind  stmtResultKind
	value loxObject // set only when kind == resultReturn
}

var resultNormal = stmtResult{kind: resultNone}

func (i *Interpreter) execStmt(env *environment, stmt ast.Stmt) stmtResult {
	switch stmt := stmt.(type) {
	case *ast.VarStmt:
		i.execVarStmt(env, stmt)
	case *ast.FunctionStmt:
		i.execFunctionStmt(env, stmt)
	case *ast.ClassStmt:
		i.execClassStmt(env, stmt)
	case *ast.ExpressionStmt:
		i.evalExpr(env, stmt.Expr)
	case *ast.PrintStmt:
		fmt.Fprintln(i.stdout, stringify(i.evalExpr(env, stmt.Expr)))
	case *ast.BlockStmt:
		return i.executeBlock(stmt.Stmts, newEnvironment(env))
	case *ast.IfStmt:
		return i.execIfStmt(env, stmt)
	case *ast.WhileStmt:
		return i.execWhileStmt(env, stmt)
	case *ast.BreakStmt:
		return stmtResult{kind: resultBreak}
	case *ast.ContinueStmt:
		return stmtResult{kind: resultContinue}
	case *ast.ReturnStmt:
		return i.execReturnStmt(env, stmt)
	default:
		panic(fmt.Sprintf("interpreter: unexpected statement type %T", stmt))
	}
	return resultNormal
}

func (i *Interpreter) execVarStmt(env *environment, stmt *ast.VarStmt) {
	var value loxObject = loxNil{}
	if stmt.Initializer != nil {
		value = i.evalExpr(env, stmt.Initializer)
	}
	env.Define(stmt.Name.Lexeme, value)
}

func (i *Interpreter) execFunctionStmt(env *environment, stmt *ast.FunctionStmt) {
	env.Define(stmt.Function.Name.Lexeme, &loxFunction{decl: stmt.Function, closure: env})
}

func (i *Interpreter) execClassStmt(env *environment, stmt *ast.ClassStmt) {
	var superclass *loxClass
	if stmt.Superclass != nil {
		v := i.evalExpr(env, stmt.Superclass)
		sc, ok := v.(*loxClass)
		if !ok {
			panic(newRuntimeError(stmt.Superclass.Name, "superclass must be a class"))
		}
		superclass = sc
	}

	env.Define(stmt.Name.Lexeme, loxNil{})

	methodEnv := env
	if superclass != nil {
		methodEnv = newEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(stmt.Methods))
	for _, methodDecl := range stmt.Methods {
		methods[methodDecl.Name.Lexeme] = &loxFunction{
			decl:          methodDecl,
			closure:       methodEnv,
			isInitializer: methodDecl.Kind == ast.KindInitializer,
		}
	}

	class := &loxClass{name: stmt.Name.Lexeme, superclass: superclass, methods: methods}
	env.Assign(stmt.Name, class)
}

func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *environment) stmtResult {
	for _, stmt := range stmts {
		if result := i.execStmt(env, stmt); result.kind != resultNone {
			return result
		}
	}
	return resultNormal
}

func (i *Interpreter) execIfStmt(env *environment, stmt *ast.IfStmt) stmtResult {
	if isTruthy(i.evalExpr(env, stmt.Condition)) {
		return i.execStmt(env, stmt.Then)
	}
	if stmt.Else != nil {
		return i.execStmt(env, stmt.Else)
	}
	return resultNormal
}

// execWhileStmt runs stmt's body until its condition is falsy or the body breaks out. stmt.Post, when present (a
// desugared for-loop's update expression), runs after every iteration of the body - including one that ended in
// `continue` - since resultContinue falls through the switch below just like a normal completion.
func (i *Interpreter) execWhileStmt(env *environment, stmt *ast.WhileStmt) stmtResult {
	for isTruthy(i.evalExpr(env, stmt.Condition)) {
		result := i.execStmt(env, stmt.Body)
		switch result.kind {
		case resultBreak:
			return resultNormal
		case resultReturn:
			return result
		}
		if stmt.Post != nil {
			i.evalExpr(env, stmt.Post)
		}
	}
	return resultNormal
}

func (i *Interpreter) execReturnStmt(env *environment, stmt *ast.ReturnStmt) stmtResult {
	value := loxObject(loxNil{})
	if stmt.Value != nil {
		value = i.evalExpr(env, stmt.Value)
	}
	return stmtResult{kind: resultReturn, value: value}
}

func (i *Interpreter) evalExpr(env *environment, expr ast.Expr) loxObject {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		return i.evalLiteralExpr(expr)
	case *ast.VariableExpr:
		return i.lookUpVariable(env, expr.Name)
	case *ast.AssignmentExpr:
		return i.evalAssignmentExpr(env, expr)
	case *ast.UnaryExpr:
		return i.evalUnaryExpr(env, expr)
	case *ast.BinaryExpr:
		return i.evalBinaryExpr(env, expr)
	case *ast.LogicalExpr:
		return i.evalLogicalExpr(env, expr)
	case *ast.TernaryExpr:
		if isTruthy(i.evalExpr(env, expr.Condition)) {
			return i.evalExpr(env, expr.Then)
		}
		return i.evalExpr(env, expr.Else)
	case *ast.GroupingExpr:
		return i.evalExpr(env, expr.Expression)
	case *ast.CallExpr:
		return i.evalCallExpr(env, expr)
	case *ast.GetExpr:
		return i.evalGetExpr(env, expr)
	case *ast.SetExpr:
		return i.evalSetExpr(env, expr)
	case *ast.ThisExpr:
		return i.lookUpVariable(env, expr.Keyword)
	case *ast.SuperExpr:
		return i.evalSuperExpr(env, expr)
	case *ast.FunctionExpr:
		return &loxFunction{decl: expr, closure: env}
	default:
		panic(fmt.Sprintf("interpreter: unexpected expression type %T", expr))
	}
}

func (i *Interpreter) evalLiteralExpr(expr *ast.LiteralExpr) loxObject {
	switch expr.Value.Type {
	case token.Number:
		return loxNumber(expr.Value.Literal.(float64))
	case token.String:
		return loxString(expr.Value.Literal.(string))
	case token.True:
		return loxBool(true)
	case token.False:
		return loxBool(false)
	case token.Nil:
		return loxNil{}
	default:
		panic(fmt.Sprintf("interpreter: unexpected literal token type %s", expr.Value.Type))
	}
}

func (i *Interpreter) lookUpVariable(env *environment, name token.Token) loxObject {
	if distance, ok := i.locals[name]; ok {
		return env.GetAt(distance, name)
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evalAssignmentExpr(env *environment, expr *ast.AssignmentExpr) loxObject {
	value := i.evalExpr(env, expr.Value)
	if distance, ok := i.locals[expr.Name]; ok {
		env.AssignAt(distance, expr.Name, value)
	} else {
		i.globals.Assign(expr.Name, value)
	}
	return value
}

func (i *Interpreter) evalUnaryExpr(env *environment, expr *ast.UnaryExpr) loxObject {
	right := i.evalExpr(env, expr.Right)
	switch expr.Op.Type {
	case token.Bang:
		return loxBool(!isTruthy(right))
	case token.Minus:
		n, ok := right.(loxNumber)
		if !ok {
			panic(newRuntimeError(expr.Op, "operand must be a number"))
		}
		return -n
	default:
		panic(fmt.Sprintf("interpreter: unexpected unary operator %s", expr.Op.Type))
	}
}

func (i *Interpreter) evalLogicalExpr(env *environment, expr *ast.LogicalExpr) loxObject {
	left := i.evalExpr(env, expr.Left)
	switch expr.Op.Type {
	case token.Or:
		if isTruthy(left) {
			return left
		}
	case token.And:
		if !isTruthy(left) {
			return left
		}
	default:
		panic(fmt.Sprintf("interpreter: unexpected logical operator %s", expr.Op.Type))
	}
	return i.evalExpr(env, expr.Right)
}

// evalBinaryExpr implements every binary operator with strict, static-language-like type checking: operands must
// both be numbers (arithmetic, relational), both be strings (+ for concatenation), or any two values (==, !=). There
// is no implicit coercion between numbers and strings, unlike the reference implementation this is based on.
func (i *Interpreter) evalBinaryExpr(env *environment, expr *ast.BinaryExpr) loxObject {
	left := i.evalExpr(env, expr.Left)
	right := i.evalExpr(env, expr.Right)

	switch expr.Op.Type {
	case token.EqualEqual:
		return loxBool(loxEquals(left, right))
	case token.BangEqual:
		return loxBool(!loxEquals(left, right))
	}

	switch expr.Op.Type {
	case token.Plus:
		if ln, lok := left.(loxNumber); lok {
			if rn, rok := right.(loxNumber); rok {
				return ln + rn
			}
		}
		if ls, lok := left.(loxString); lok {
			if rs, rok := right.(loxString); rok {
				return ls + rs
			}
		}
		panic(newRuntimeError(expr.Op, "operands must be two numbers or two strings, got %s and %s", left.Type(), right.Type()))
	case token.Minus, token.Asterisk, token.Slash, token.Percent, token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		ln, lok := left.(loxNumber)
		rn, rok := right.(loxNumber)
		if !lok || !rok {
			panic(newRuntimeError(expr.Op, "operands must be numbers, got %s and %s", left.Type(), right.Type()))
		}
		return evalNumericBinaryOp(expr.Op, ln, rn)
	default:
		panic(fmt.Sprintf("interpreter: unexpected binary operator %s", expr.Op.Type))
	}
}

func evalNumericBinaryOp(op token.Token, l, r loxNumber) loxObject {
	switch op.Type {
	case token.Minus:
		return l - r
	case token.Asterisk:
		return l * r
	case token.Slash:
		if r == 0 {
			panic(newRuntimeError(op, "division by zero"))
		}
		return l / r
	case token.Percent:
		if r == 0 {
			panic(newRuntimeError(op, "division by zero"))
		}
		return loxNumber(math.Mod(float64(l), float64(r)))
	case token.Less:
		return loxBool(l < r)
	case token.LessEqual:
		return loxBool(l <= r)
	case token.Greater:
		return loxBool(l > r)
	case token.GreaterEqual:
		return loxBool(l >= r)
	default:
		panic(fmt.Sprintf("interpreter: unexpected numeric binary operator %s", op.Type))
	}
}

func loxEquals(left, right loxObject) bool {
	switch left := left.(type) {
	case loxNumber:
		right, ok := right.(loxNumber)
		return ok && left == right
	case loxString:
		right, ok := right.(loxString)
		return ok && left == right
	case loxBool:
		right, ok := right.(loxBool)
		return ok && left == right
	case loxNil:
		_, ok := right.(loxNil)
		return ok
	default:
		return left == right
	}
}

func (i *Interpreter) evalCallExpr(env *environment, expr *ast.CallExpr) loxObject {
	callee := i.evalExpr(env, expr.Callee)
	args := make([]loxObject, len(expr.Args))
	for j, arg := range expr.Args {
		args[j] = i.evalExpr(env, arg)
	}

	callable, ok := callee.(loxCallable)
	if !ok {
		panic(newRuntimeError(expr.Paren, "can only call functions and classes"))
	}
	if len(args) != callable.Arity() {
		panic(newRuntimeError(expr.Paren, "expected %d arguments but got %d", callable.Arity(), len(args)))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalGetExpr(env *environment, expr *ast.GetExpr) loxObject {
	object := i.evalExpr(env, expr.Object)
	instance, ok := object.(*loxInstance)
	if !ok {
		panic(newRuntimeError(expr.Name, "only instances have properties"))
	}
	value, ok := instance.Get(expr.Name.Lexeme)
	if !ok {
		panic(newRuntimeError(expr.Name, "undefined property %q", expr.Name.Lexeme))
	}
	return value
}

func (i *Interpreter) evalSetExpr(env *environment, expr *ast.SetExpr) loxObject {
	object := i.evalExpr(env, expr.Object)
	instance, ok := object.(*loxInstance)
	if !ok {
		panic(newRuntimeError(expr.Name, "only instances have fields"))
	}
	value := i.evalExpr(env, expr.Value)
	instance.Set(expr.Name.Lexeme, value)
	return value
}

func (i *Interpreter) evalSuperExpr(env *environment, expr *ast.SuperExpr) loxObject {
	distance := i.locals[expr.Keyword]
	superclass := env.GetByName(distance, "super").(*loxClass)
	instance := env.GetByName(distance-1, "this").(*loxInstance)
	method, ok := superclass.findMethod(expr.Method.Lexeme)
	if !ok {
		panic(newRuntimeError(expr.Method, "undefined property %q", expr.Method.Lexeme))
	}
	return method.Bind(instance)
}
