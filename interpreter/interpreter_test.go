package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhawkins-dev/golox/interpreter"
	"github.com/dhawkins-dev/golox/parser"
	"github.com/dhawkins-dev/golox/resolver"
)

// run parses, resolves and interprets source, returning everything printed to stdout and any error returned by
// Interpret.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	program, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	locals, err := resolver.Resolve(program)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))
	runErr := interp.Interpret(locals, program)
	return out.String(), runErr
}

func TestInterpretPrograms(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantStdout string
	}{
		{"arithmetic", `print 1 + 2 * 3;`, "7\n"},
		{"modulo", `print 7 % 3;`, "1\n"},
		{"ternary", `print true ? "yes" : "no";`, "yes\n"},
		{"string concatenation", `print "foo" + "bar";`, "foobar\n"},
		{
			"variables and assignment",
			`var a = 1; a = a + 1; print a;`,
			"2\n",
		},
		{
			"block scoping",
			`var a = "global"; { var a = "local"; print a; } print a;`,
			"local\nglobal\n",
		},
		{
			"if/else",
			`if (1 < 2) print "yes"; else print "no";`,
			"yes\n",
		},
		{
			"while loop",
			`var i = 0; while (i < 3) { print i; i = i + 1; }`,
			"0\n1\n2\n",
		},
		{
			"for loop with continue",
			`for (var i = 0; i < 5; i = i + 1) { if (i == 2) continue; print i; }`,
			"0\n1\n3\n4\n",
		},
		{
			"break exits innermost loop",
			`for (var i = 0; i < 5; i = i + 1) { if (i == 2) break; print i; }`,
			"0\n1\n",
		},
		{
			"function call and return",
			`fun add(a, b) { return a + b; } print add(1, 2);`,
			"3\n",
		},
		{
			"closures capture variables by reference",
			`
			fun makeCounter() {
				var count = 0;
				fun increment() {
					count = count + 1;
					return count;
				}
				return increment;
			}
			var counter = makeCounter();
			print counter();
			print counter();
			`,
			"1\n2\n",
		},
		{
			"classes, fields and methods",
			`
			class Greeter {
				init(name) { this.name = name; }
				greet() { return "hi " + this.name; }
			}
			var g = Greeter("Ada");
			print g.greet();
			`,
			"hi Ada\n",
		},
		{
			"inheritance and super",
			`
			class Animal {
				speak() { return "..."; }
			}
			class Dog < Animal {
				speak() { return super.speak() + " woof"; }
			}
			print Dog().speak();
			`,
			"... woof\n",
		},
		{
			"lambda expression",
			`var square = fun (x) { return x * x; }; print square(4);`,
			"16\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, err := run(t, tt.source)
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
		})
	}
}

func TestInterpretREPLEchoesBareExpressions(t *testing.T) {
	program, err := parser.Parse(`1 + 2; print "side effect";`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	locals, err := resolver.Resolve(program)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out), interpreter.WithREPLEcho())
	if err := interp.Interpret(locals, program); err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	want := "3\nside effect\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
}

func TestInterpretWithoutREPLEchoDiscardsBareExpressions(t *testing.T) {
	stdout, err := run(t, `1 + 2;`)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"mixed type addition is a strict type error", `print 1 + "a";`, "two numbers or two strings"},
		{"division by zero", `print 1 / 0;`, "division by zero"},
		{"calling a non-callable value", `var a = 1; a();`, "only call functions and classes"},
		{
			"wrong number of arguments",
			`fun f(a, b) { return a + b; } f(1);`,
			"expected 2 arguments but got 1",
		},
		{"accessing undefined property", `class A {} A().foo;`, "undefined property"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.source)
			if err == nil {
				t.Fatal("Interpret() error = nil, want non-nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}
