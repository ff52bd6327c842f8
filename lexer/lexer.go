// Package lexer implements a lexer for Lox source code.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhawkins-dev/golox/token"
)

const eof = -1

// ErrorHandler is the function which handles syntax errors encountered during lexing. It's passed the line on which
// the error occurred and a message describing it.
type ErrorHandler func(line int, msg string)

// Lexer converts Lox source code into lexical tokens. Tokens are read from the lexer using the Next method.
type Lexer struct {
	src        []byte
	errHandler ErrorHandler

	ch         rune // character currently being considered
	line       int
	offset     int // byte offset of ch in src
	readOffset int // byte offset of next character to be read
}

// New constructs a Lexer over source. If errHandler is nil, lexical errors are silently discarded.
func New(source string, errHandler ErrorHandler) *Lexer {
	if errHandler == nil {
		errHandler = func(int, string) {}
	}
	l := &Lexer{
		src:        []byte(source),
		errHandler: errHandler,
		line:       1,
	}
	l.next()
	return l
}

// Lex runs the lexer to completion and returns every token, including the trailing EOF token.
func (l *Lexer) Lex() []token.Token {
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// Next returns the next token. An EOF token is returned if the end of the source code has been reached.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	line := l.line
	start := l.offset

	switch {
	case l.ch == eof:
		return token.Token{Type: token.EOF, Lexeme: "", Line: line}
	case isDigit(l.ch):
		return l.consumeNumber(line, start)
	case isAlpha(l.ch):
		return l.consumeIdent(line, start)
	case l.ch == '"':
		return l.consumeString(line, start)
	}

	ch := l.ch
	l.next()

	two := func(second rune, ifMatch, otherwise token.Type) token.Token {
		typ := otherwise
		if l.ch == second {
			l.next()
			typ = ifMatch
		}
		return token.Token{Type: typ, Lexeme: string(l.src[start:l.offset]), Line: line}
	}

	switch ch {
	case ';':
		return token.Token{Type: token.Semicolon, Lexeme: ";", Line: line}
	case ',':
		return token.Token{Type: token.Comma, Lexeme: ",", Line: line}
	case '.':
		return token.Token{Type: token.Dot, Lexeme: ".", Line: line}
	case '+':
		return token.Token{Type: token.Plus, Lexeme: "+", Line: line}
	case '-':
		return token.Token{Type: token.Minus, Lexeme: "-", Line: line}
	case '*':
		return token.Token{Type: token.Asterisk, Lexeme: "*", Line: line}
	case '%':
		return token.Token{Type: token.Percent, Lexeme: "%", Line: line}
	case '?':
		return token.Token{Type: token.Question, Lexeme: "?", Line: line}
	case ':':
		return token.Token{Type: token.Colon, Lexeme: ":", Line: line}
	case '(':
		return token.Token{Type: token.LeftParen, Lexeme: "(", Line: line}
	case ')':
		return token.Token{Type: token.RightParen, Lexeme: ")", Line: line}
	case '{':
		return token.Token{Type: token.LeftBrace, Lexeme: "{", Line: line}
	case '}':
		return token.Token{Type: token.RightBrace, Lexeme: "}", Line: line}
	case '=':
		return two('=', token.EqualEqual, token.Equal)
	case '!':
		return two('=', token.BangEqual, token.Bang)
	case '<':
		return two('=', token.LessEqual, token.Less)
	case '>':
		return two('=', token.GreaterEqual, token.Greater)
	case '/':
		return token.Token{Type: token.Slash, Lexeme: "/", Line: line}
	default:
		l.errHandler(line, "unexpected character "+string(ch))
		return l.Next()
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(l.ch):
			l.next()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != eof {
				l.next()
			}
		default:
			return
		}
	}
}

func (l *Lexer) consumeNumber(line, start int) token.Token {
	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	lexeme := string(l.src[start:l.offset])
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.errHandler(line, "invalid number literal "+lexeme)
	}
	return token.Token{Type: token.Number, Lexeme: lexeme, Literal: value, Line: line}
}

func (l *Lexer) consumeString(line, start int) token.Token {
	l.next() // opening quote
	var b strings.Builder
	for l.ch != '"' {
		if l.ch == eof || l.ch == '\n' {
			l.errHandler(line, "unterminated string")
			return token.Token{Type: token.String, Lexeme: string(l.src[start:l.offset]), Literal: b.String(), Line: line}
		}
		b.WriteRune(l.ch)
		l.next()
	}
	l.next() // closing quote
	return token.Token{Type: token.String, Lexeme: string(l.src[start:l.offset]), Literal: b.String(), Line: line}
}

func (l *Lexer) consumeIdent(line, start int) token.Token {
	for isAlphaNumeric(l.ch) {
		l.next()
	}
	ident := string(l.src[start:l.offset])
	return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Line: line}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\r', '\t', '\n':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

// next reads the next character into l.ch and advances the lexer. If the end of the source code has been reached,
// l.ch is set to eof.
func (l *Lexer) next() {
	if l.ch == '\n' {
		l.line++
	}
	l.offset = l.readOffset
	if l.readOffset >= len(l.src) {
		l.ch = eof
		return
	}
	r, size := utf8.DecodeRune(l.src[l.readOffset:])
	l.readOffset += size
	l.ch = r
}

// peek returns the next character without advancing the lexer. If the end of the source code has been reached, eof
// is returned.
func (l *Lexer) peek() rune {
	if l.readOffset >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(l.src[l.readOffset:])
	return r
}
