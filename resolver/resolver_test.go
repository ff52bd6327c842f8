package resolver_test

import (
	"strings"
	"testing"

	"github.com/dhawkins-dev/golox/parser"
	"github.com/dhawkins-dev/golox/resolver"
)

func TestResolveValidPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"local shadowing", "var a = 1; { var a = 2; print a; }"},
		{"closures", "fun makeCounter() { var i = 0; fun count() { i = i + 1; return i; } return count; } print makeCounter();"},
		{"class with methods", "class Foo { bar() { return this.baz; } } var f = Foo(); print f;"},
		{"inheritance with super", "class A { greet() { return 1; } } class B < A { greet() { return super.greet() + 1; } }"},
		{"break and continue inside loop", "while (true) { if (true) break; if (true) continue; }"},
		{"for loop desugared body still resolves", "for (var i = 0; i < 3; i = i + 1) print i;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := resolver.Resolve(program); err != nil {
				t.Errorf("Resolve() error = %v, want nil", err)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"break outside loop", "break;", "'break' outside"},
		{"continue outside loop", "continue;", "'continue' outside"},
		{"return outside function", "return 1;", "return from top-level"},
		{"this outside class", "print this;", "'this' outside"},
		{"super outside class", "print super.foo;", "'super' outside"},
		{"self reference in initializer", "var a = a;", "own initializer"},
		{"redeclare in same scope", "{ var a = 1; var a = 2; }", "already a variable"},
		{"class inherits from itself", "class A < A {}", "can't inherit from itself"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			_, resolveErr := resolver.Resolve(program)
			if resolveErr == nil {
				t.Fatal("Resolve() error = nil, want non-nil")
			}
			if !strings.Contains(resolveErr.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", resolveErr.Error(), tt.wantErr)
			}
		})
	}
}
