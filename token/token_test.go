package token_test

import (
	"fmt"
	"testing"

	"github.com/dhawkins-dev/golox/token"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  token.Type
		want string
	}{
		{token.Plus, "+"},
		{token.If, "if"},
		{token.Ident, "identifier"},
		{token.EOF, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTypeFormatMessageVerb(t *testing.T) {
	got := fmt.Sprintf("%m", token.If)
	want := "'if'"
	if got != want {
		t.Errorf("Sprintf(%%m, token.If) = %q, want %q", got, want)
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Type
	}{
		{"var", token.Var},
		{"class", token.Class},
		{"foo", token.Ident},
		{"init", token.Ident}, // not a keyword, just a conventional method name
	}
	for _, tt := range tests {
		if got := token.LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}

func TestTokenIsZero(t *testing.T) {
	if !(token.Token{}).IsZero() {
		t.Error("zero value Token.IsZero() = false, want true")
	}
	tok := token.Token{Type: token.Ident, Lexeme: "x", Line: 1}
	if tok.IsZero() {
		t.Error("non-zero Token.IsZero() = true, want false")
	}
}
