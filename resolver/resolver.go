// Package resolver implements a static analysis pass over a parsed Lox program which resolves variable references to
// the lexical scope they're declared in, ahead of execution.
package resolver

import (
	"fmt"

	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/loxerr"
	"github.com/dhawkins-dev/golox/token"
)

// Resolve statically analyses program and returns a map from identifier tokens to the number of enclosing scopes
// between the use of the identifier and the scope it was declared in: 0 means the current scope, 1 the parent
// scope, and so on. A token absent from the map refers to a global, or to a variable that was never declared.
//
// Resolve also rejects programs which are syntactically valid but semantically meaningless: returning from
// top-level code, using this/super outside a class, break/continue outside a loop, and so on.
func Resolve(program *ast.Program) (map[token.Token]int, error) {
	r := &resolver{locals: map[token.Token]int{}}
	for _, stmt := range program.Stmts {
		r.resolveStmt(stmt)
	}
	return r.locals, r.errs.Err()
}

type identStatus int

const (
	undeclared identStatus = iota
	declared
	defined
)

type scope map[string]identStatus

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind int

const (
	noClass classKind = iota
	inClass
	inSubclass
)

type resolver struct {
	scopes stack[scope]
	locals map[token.Token]int

	currentFunction functionKind
	currentClass    classKind
	loopDepth       int

	errs loxerr.Errors
}

func (r *resolver) beginScope() {
	r.scopes.push(scope{})
}

func (r *resolver) endScope() {
	r.scopes.pop()
}

func (r *resolver) declare(name token.Token) {
	if r.scopes.len() == 0 {
		return
	}
	sc := r.scopes.peek()
	if sc[name.Lexeme] != undeclared {
		r.errs.Addf(name.Line, "already a variable named %q in this scope", name.Lexeme)
		return
	}
	sc[name.Lexeme] = declared
}

func (r *resolver) define(name token.Token) {
	if r.scopes.len() == 0 {
		return
	}
	r.scopes.peek()[name.Lexeme] = defined
}

func (r *resolver) resolveLocal(name token.Token) {
	for i := r.scopes.len() - 1; i >= 0; i-- {
		if _, ok := r.scopes.index(i)[name.Lexeme]; ok {
			r.locals[name] = r.scopes.len() - 1 - i
			return
		}
	}
	// Not found in any scope: either global or undeclared, both resolved dynamically at runtime.
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarStmt:
		r.resolveVarStmt(stmt)
	case *ast.FunctionStmt:
		r.declare(*stmt.Function.Name)
		r.define(*stmt.Function.Name)
		r.resolveFunction(stmt.Function, inFunction)
	case *ast.ClassStmt:
		r.resolveClassStmt(stmt)
	case *ast.ExpressionStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.BlockStmt:
		r.beginScope()
		for _, s := range stmt.Stmts {
			r.resolveStmt(s)
		}
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(stmt.Condition)
		r.loopDepth++
		r.resolveStmt(stmt.Body)
		if stmt.Post != nil {
			r.resolveExpr(stmt.Post)
		}
		r.loopDepth--
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.errs.Add(stmt.Keyword.Line, "can't use 'break' outside of a loop")
		}
	case *ast.ContinueStmt:
		if r.loopDepth == 0 {
			r.errs.Add(stmt.Keyword.Line, "can't use 'continue' outside of a loop")
		}
	case *ast.ReturnStmt:
		r.resolveReturnStmt(stmt)
	default:
		panic(fmt.Sprintf("resolver: unexpected statement type %T", stmt))
	}
}

func (r *resolver) resolveVarStmt(stmt *ast.VarStmt) {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
}

func (r *resolver) resolveReturnStmt(stmt *ast.ReturnStmt) {
	if r.currentFunction == noFunction {
		r.errs.Add(stmt.Keyword.Line, "can't return from top-level code")
	}
	if stmt.Value != nil {
		if r.currentFunction == inInitializer {
			r.errs.Add(stmt.Keyword.Line, "can't return a value from an initializer")
		}
		r.resolveExpr(stmt.Value)
	}
}

func (r *resolver) resolveClassStmt(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = inClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errs.Add(stmt.Superclass.Name.Line, "a class can't inherit from itself")
		} else {
			r.currentClass = inSubclass
			r.resolveExpr(stmt.Superclass)
		}
	}

	if stmt.Superclass != nil {
		r.beginScope()
		r.scopes.peek()["super"] = defined
		defer r.endScope()
	}

	r.beginScope()
	r.scopes.peek()["this"] = defined
	defer r.endScope()

	for _, method := range stmt.Methods {
		kind := inMethod
		if method.Kind == ast.KindInitializer {
			kind = inInitializer
		}
		r.resolveFunction(method, kind)
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionExpr, kind functionKind) {
	enclosingFunction := r.currentFunction
	enclosingLoopDepth := r.loopDepth
	r.currentFunction = kind
	r.loopDepth = 0
	defer func() {
		r.currentFunction = enclosingFunction
		r.loopDepth = enclosingLoopDepth
	}()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, s := range fn.Body {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
	case *ast.VariableExpr:
		if r.scopes.len() > 0 {
			if status, ok := r.scopes.peek()[expr.Name.Lexeme]; ok && status == declared {
				r.errs.Add(expr.Name.Line, "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(expr.Name)
	case *ast.AssignmentExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr.Name)
	case *ast.UnaryExpr:
		r.resolveExpr(expr.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.TernaryExpr:
		r.resolveExpr(expr.Condition)
		r.resolveExpr(expr.Then)
		r.resolveExpr(expr.Else)
	case *ast.GroupingExpr:
		r.resolveExpr(expr.Expression)
	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(expr.Object)
	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *ast.ThisExpr:
		if r.currentClass == noClass {
			r.errs.Add(expr.Keyword.Line, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(expr.Keyword)
	case *ast.SuperExpr:
		switch r.currentClass {
		case noClass:
			r.errs.Add(expr.Keyword.Line, "can't use 'super' outside of a class")
			return
		case inClass:
			r.errs.Add(expr.Keyword.Line, "can't use 'super' in a class with no superclass")
			return
		}
		r.resolveLocal(expr.Keyword)
	case *ast.FunctionExpr:
		r.resolveFunction(expr, inFunction)
	default:
		panic(fmt.Sprintf("resolver: unexpected expression type %T", expr))
	}
}
