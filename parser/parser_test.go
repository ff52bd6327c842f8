package parser_test

import (
	"strings"
	"testing"

	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/parser"
)

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"arithmetic precedence", "1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"modulo at multiplicative precedence", "1 + 2 % 3;", "(+ 1 (% 2 3))"},
		{"ternary binds looser than or", "true or false ? 1 : 2;", "(?: (or true false) 1 2)"},
		{"assignment is right associative", "a = b = 1;", "(= a (= b 1))"},
		{"grouping", "(1 + 2) * 3;", "(* (group (+ 1 2)) 3)"},
		{"unary", "-1;", "(- 1)"},
		{"comparison chain", "1 < 2;", "(< 1 2)"},
		{"logical and/or precedence", "1 or 2 and 3;", "(or 1 (and 2 3))"},
		{"call", "f(1, 2);", "(call f 1 2)"},
		{"property get", "a.b;", "(get a b)"},
		{"property set", "a.b = 1;", "(set a b 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(program.Stmts) != 1 {
				t.Fatalf("got %d statements, want 1", len(program.Stmts))
			}
			exprStmt, ok := program.Stmts[0].(*ast.ExpressionStmt)
			if !ok {
				t.Fatalf("statement type = %T, want *ast.ExpressionStmt", program.Stmts[0])
			}
			if got := ast.Sprint(exprStmt.Expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program, err := parser.Parse("for (var i = 0; i < 10; i = i + 1) print i;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(program.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Stmts))
	}
	block, ok := program.Stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.BlockStmt", program.Stmts[0])
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("desugared block has %d statements, want 2 (init, while)", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement type = %T, want *ast.VarStmt", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement type = %T, want *ast.WhileStmt", block.Stmts[1])
	}
	if _, ok := whileStmt.Body.(*ast.PrintStmt); !ok {
		t.Errorf("while body type = %T, want *ast.PrintStmt", whileStmt.Body)
	}
	if whileStmt.Post == nil {
		t.Error("while Post = nil, want the loop's update expression")
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"missing semicolon", "var a = 1", "expected ';'"},
		{"invalid assignment target", "1 = 2;", "invalid assignment target"},
		{"expected expression", "var a = ;", "expected expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.source)
			if err == nil {
				t.Fatal("Parse() error = nil, want non-nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseClassDecl(t *testing.T) {
	program, err := parser.Parse(`
		class Greeter < Base {
			init(name) { this.name = name; }
			greet() { print "hi " + this.name; }
		}
	`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(program.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Stmts))
	}
	classStmt, ok := program.Stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.ClassStmt", program.Stmts[0])
	}
	if classStmt.Name.Lexeme != "Greeter" {
		t.Errorf("class name = %q, want Greeter", classStmt.Name.Lexeme)
	}
	if classStmt.Superclass == nil || classStmt.Superclass.Name.Lexeme != "Base" {
		t.Errorf("superclass = %v, want Base", classStmt.Superclass)
	}
	if len(classStmt.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(classStmt.Methods))
	}
	if classStmt.Methods[0].Kind != ast.KindInitializer {
		t.Errorf("first method kind = %s, want initializer", classStmt.Methods[0].Kind)
	}
}
