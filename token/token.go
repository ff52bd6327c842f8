// Package token defines Token which represents a lexical token of the Lox programming language.
package token

import "fmt"

// Type is the type of a lexical token of Lox code.
type Type uint8

// The list of all token types.
const (
	Illegal Type = iota

	// Keywords
	keywordsStart
	Print    // print
	Var      // var
	True     // true
	False    // false
	Nil      // nil
	If       // if
	Else     // else
	And      // and
	Or       // or
	While    // while
	For      // for
	Break    // break
	Continue // continue
	Fun      // fun
	Return   // return
	Class    // class
	This     // this
	Super    // super
	keywordsEnd

	// Literals
	Ident  // identifier
	String // string
	Number // number

	// Symbols
	Semicolon    // ;
	Comma        // ,
	Dot          // .
	Equal        // =
	Plus         // +
	Minus        // -
	Asterisk     // *
	Slash        // /
	Percent      // %
	Question     // ?
	Colon        // :
	Less         // <
	LessEqual    // <=
	Greater      // >
	GreaterEqual // >=
	EqualEqual   // ==
	BangEqual    // !=
	Bang         // !
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }

	EOF
)

// InitIdent is the identifier used for a class's constructor method.
const InitIdent = "init"

// MaxParams is the maximum number of parameters that a function may declare, and the maximum number of arguments
// that may be passed in a single call.
const MaxParams = 255

// Token is a lexical token of Lox code.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any // float64 for Number, string for String, nil otherwise
	Line    int // 1-based line number
}

// IsZero reports whether t is the zero value, which is never produced by the lexer and so can be used as a sentinel
// for "no token".
func (t Token) IsZero() bool {
	return t == Token{}
}

func (t Token) String() string {
	return t.Lexeme
}

var typeStrings = map[Type]string{
	Illegal:      "illegal",
	Print:        "print",
	Var:          "var",
	True:         "true",
	False:        "false",
	Nil:          "nil",
	If:           "if",
	Else:         "else",
	And:          "and",
	Or:           "or",
	While:        "while",
	For:          "for",
	Break:        "break",
	Continue:     "continue",
	Fun:          "fun",
	Return:       "return",
	Class:        "class",
	This:         "this",
	Super:        "super",
	Ident:        "identifier",
	String:       "string",
	Number:       "number",
	Semicolon:    ";",
	Comma:        ",",
	Dot:          ".",
	Equal:        "=",
	Plus:         "+",
	Minus:        "-",
	Asterisk:     "*",
	Slash:        "/",
	Percent:      "%",
	Question:     "?",
	Colon:        ":",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	EqualEqual:   "==",
	BangEqual:    "!=",
	Bang:         "!",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	EOF:          "EOF",
}

// String returns the name of the token type, as it would appear in an error message, e.g. "if" or ";".
func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Format implements fmt.Formatter. All verbs have the default behaviour, except for 'm' (message) which quotes the
// type's name for use in an error message, e.g. 'if'.
func (t Type) Format(f fmt.State, verb rune) {
	if verb == 'm' {
		fmt.Fprintf(f, "'%s'", t.String())
		return
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), uint8(t))
}

var keywordTypesByIdent = func() map[string]Type {
	m := make(map[string]Type, keywordsEnd-keywordsStart-1)
	for i := keywordsStart + 1; i < keywordsEnd; i++ {
		m[Type(i).String()] = Type(i)
	}
	return m
}()

// LookupIdent returns the keyword Type associated with ident if it's a reserved word, otherwise Ident.
func LookupIdent(ident string) Type {
	if t, ok := keywordTypesByIdent[ident]; ok {
		return t
	}
	return Ident
}
