package ast

import (
	"fmt"
	"strings"
)

// Print prints a Node to stdout as a Lisp-like s-expression, e.g. (+ 1 2).
func Print(node Node) {
	fmt.Println(Sprint(node))
}

// Sprint formats a Node as a Lisp-like s-expression. It exists purely for debugging; it is not part of the
// interpreter's correctness surface.
func Sprint(node Node) string {
	switch node := node.(type) {
	case *Program:
		return sexpr("program", stmtStrings(node.Stmts)...)

	case *LiteralExpr:
		return node.Value.Lexeme
	case *VariableExpr:
		return node.Name.Lexeme
	case *AssignmentExpr:
		return sexpr("=", node.Name.Lexeme, Sprint(node.Value))
	case *UnaryExpr:
		return sexpr(node.Op.Lexeme, Sprint(node.Right))
	case *BinaryExpr:
		return sexpr(node.Op.Lexeme, Sprint(node.Left), Sprint(node.Right))
	case *LogicalExpr:
		return sexpr(node.Op.Lexeme, Sprint(node.Left), Sprint(node.Right))
	case *TernaryExpr:
		return sexpr("?:", Sprint(node.Condition), Sprint(node.Then), Sprint(node.Else))
	case *GroupingExpr:
		return sexpr("group", Sprint(node.Expression))
	case *CallExpr:
		return sexpr("call", append([]string{Sprint(node.Callee)}, exprStrings(node.Args)...)...)
	case *GetExpr:
		return sexpr("get", Sprint(node.Object), node.Name.Lexeme)
	case *SetExpr:
		return sexpr("set", Sprint(node.Object), node.Name.Lexeme, Sprint(node.Value))
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return sexpr("super", node.Method.Lexeme)
	case *FunctionExpr:
		return functionSexpr(node)

	case *ExpressionStmt:
		return Sprint(node.Expr)
	case *PrintStmt:
		return sexpr("print", Sprint(node.Expr))
	case *VarStmt:
		if node.Initializer == nil {
			return sexpr("var", node.Name.Lexeme)
		}
		return sexpr("var", node.Name.Lexeme, Sprint(node.Initializer))
	case *BlockStmt:
		return sexpr("block", stmtStrings(node.Stmts)...)
	case *IfStmt:
		args := []string{Sprint(node.Condition), Sprint(node.Then)}
		if node.Else != nil {
			args = append(args, Sprint(node.Else))
		}
		return sexpr("if", args...)
	case *WhileStmt:
		args := []string{Sprint(node.Condition), Sprint(node.Body)}
		if node.Post != nil {
			args = append(args, Sprint(node.Post))
		}
		return sexpr("while", args...)
	case *BreakStmt:
		return "break"
	case *ContinueStmt:
		return "continue"
	case *FunctionStmt:
		return functionSexpr(node.Function)
	case *ReturnStmt:
		if node.Value == nil {
			return "(return)"
		}
		return sexpr("return", Sprint(node.Value))
	case *ClassStmt:
		args := []string{node.Name.Lexeme}
		if node.Superclass != nil {
			args = append(args, "< "+node.Superclass.Name.Lexeme)
		}
		for _, m := range node.Methods {
			args = append(args, functionSexpr(m))
		}
		return sexpr("class", args...)

	default:
		panic(fmt.Sprintf("ast.Sprint: unexpected node type %T", node))
	}
}

func functionSexpr(f *FunctionExpr) string {
	name := "lambda"
	if f.Name != nil {
		name = f.Name.Lexeme
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}
	args := append([]string{"(" + strings.Join(params, " ") + ")"}, stmtStrings(f.Body)...)
	return sexpr("fun "+name, args...)
}

func exprStrings(exprs []Expr) []string {
	s := make([]string, len(exprs))
	for i, e := range exprs {
		s[i] = Sprint(e)
	}
	return s
}

func stmtStrings(stmts []Stmt) []string {
	s := make([]string, len(stmts))
	for i, st := range stmts {
		s[i] = Sprint(st)
	}
	return s
}

func sexpr(head string, args ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	b.WriteByte(')')
	return b.String()
}
