package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhawkins-dev/golox/lexer"
	"github.com/dhawkins-dev/golox/token"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []token.Token
	}{
		{
			name:   "symbols",
			source: "+ - * / % ? : ( ) { } , . ; = == ! != < <= > >=",
			want: []token.Token{
				{Type: token.Plus, Lexeme: "+", Line: 1},
				{Type: token.Minus, Lexeme: "-", Line: 1},
				{Type: token.Asterisk, Lexeme: "*", Line: 1},
				{Type: token.Slash, Lexeme: "/", Line: 1},
				{Type: token.Percent, Lexeme: "%", Line: 1},
				{Type: token.Question, Lexeme: "?", Line: 1},
				{Type: token.Colon, Lexeme: ":", Line: 1},
				{Type: token.LeftParen, Lexeme: "(", Line: 1},
				{Type: token.RightParen, Lexeme: ")", Line: 1},
				{Type: token.LeftBrace, Lexeme: "{", Line: 1},
				{Type: token.RightBrace, Lexeme: "}", Line: 1},
				{Type: token.Comma, Lexeme: ",", Line: 1},
				{Type: token.Dot, Lexeme: ".", Line: 1},
				{Type: token.Semicolon, Lexeme: ";", Line: 1},
				{Type: token.Equal, Lexeme: "=", Line: 1},
				{Type: token.EqualEqual, Lexeme: "==", Line: 1},
				{Type: token.Bang, Lexeme: "!", Line: 1},
				{Type: token.BangEqual, Lexeme: "!=", Line: 1},
				{Type: token.Less, Lexeme: "<", Line: 1},
				{Type: token.LessEqual, Lexeme: "<=", Line: 1},
				{Type: token.Greater, Lexeme: ">", Line: 1},
				{Type: token.GreaterEqual, Lexeme: ">=", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:   "number",
			source: "123 45.6",
			want: []token.Token{
				{Type: token.Number, Lexeme: "123", Literal: 123.0, Line: 1},
				{Type: token.Number, Lexeme: "45.6", Literal: 45.6, Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:   "string",
			source: `"hello"`,
			want: []token.Token{
				{Type: token.String, Lexeme: `"hello"`, Literal: "hello", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:   "identifiers and keywords",
			source: "foo bar123 var while",
			want: []token.Token{
				{Type: token.Ident, Lexeme: "foo", Line: 1},
				{Type: token.Ident, Lexeme: "bar123", Line: 1},
				{Type: token.Var, Lexeme: "var", Line: 1},
				{Type: token.While, Lexeme: "while", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "comments and newlines are skipped but advance the line",
			source: "1 // a comment\n2",
			want: []token.Token{
				{Type: token.Number, Lexeme: "1", Literal: 1.0, Line: 1},
				{Type: token.Number, Lexeme: "2", Literal: 2.0, Line: 2},
				{Type: token.EOF, Line: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexer.New(tt.source, nil).Lex()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexReportsErrors(t *testing.T) {
	var gotLines []int
	lx := lexer.New("1 @ 2", func(line int, msg string) {
		gotLines = append(gotLines, line)
	})
	lx.Lex()
	if len(gotLines) != 1 || gotLines[0] != 1 {
		t.Errorf("error lines = %v, want [1]", gotLines)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	var msgs []string
	lx := lexer.New(`"unterminated`, func(line int, msg string) {
		msgs = append(msgs, msg)
	})
	lx.Lex()
	if len(msgs) != 1 {
		t.Fatalf("got %d errors, want 1", len(msgs))
	}
}
