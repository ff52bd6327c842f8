// Package parser implements a recursive descent parser for Lox source code.
package parser

import (
	"github.com/dhawkins-dev/golox/ast"
	"github.com/dhawkins-dev/golox/lexer"
	"github.com/dhawkins-dev/golox/loxerr"
	"github.com/dhawkins-dev/golox/token"
)

// Parse parses source and returns the root node of the abstract syntax tree. If an error is returned, it's a
// [loxerr.Errors] describing every syntax error found; parsing continues past the first error so that as many
// errors as possible can be reported in one pass.
func Parse(source string) (*ast.Program, error) {
	p := &parser{}
	p.lexer = lexer.New(source, func(line int, msg string) {
		p.errs.Add(line, msg)
	})
	p.next()
	p.next()
	stmts := p.parseDeclsUntil(token.EOF)
	return &ast.Program{Stmts: stmts}, p.errs.Err()
}

type parser struct {
	lexer   *lexer.Lexer
	tok     token.Token // token currently being considered
	next_   token.Token // lookahead
	prevTok token.Token // last token consumed by next

	errs        loxerr.Errors
	lastErrLine int
}

// unwind is used as a panic value to unwind the stack and recover from a syntax error without checking for an error
// after every call to each parsing method.
type unwind struct{}

func (p *parser) parseDeclsUntil(types ...token.Type) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.tokIs(types...) {
		stmts = append(stmts, p.safelyParseDecl())
	}
	return stmts
}

func (p *parser) safelyParseDecl() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); ok {
				p.sync()
				stmt = &ast.ExpressionStmt{Expr: &ast.LiteralExpr{Value: token.Token{Type: token.Nil, Lexeme: "nil"}}}
			} else {
				panic(r)
			}
		}
	}()
	return p.parseDecl()
}

// sync advances the parser to what looks like the start of the next statement, to recover from a syntax error.
func (p *parser) sync() {
	for {
		switch p.tok.Type {
		case token.Semicolon:
			p.next()
			return
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return, token.EOF:
			return
		}
		p.next()
	}
}

func (p *parser) parseDecl() ast.Stmt {
	switch {
	case p.match(token.Var):
		return p.parseVarDecl()
	case p.match(token.Fun):
		return p.parseFunDecl()
	case p.match(token.Class):
		return p.parseClassDecl()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseVarDecl() ast.Stmt {
	name := p.expect(token.Ident, "expected variable name")
	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *parser) parseFunDecl() ast.Stmt {
	name := p.expect(token.Ident, "expected function name")
	fn := p.parseFunction(&name, ast.KindFunction)
	return &ast.FunctionStmt{Function: fn}
}

func (p *parser) parseClassDecl() ast.Stmt {
	name := p.expect(token.Ident, "expected class name")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superName := p.expect(token.Ident, "expected superclass name")
		superclass = &ast.VariableExpr{Name: superName}
	}

	p.expect(token.LeftBrace, "expected '{' before class body")
	var methods []*ast.FunctionExpr
	for !p.tokIs(token.RightBrace, token.EOF) {
		methodName := p.expect(token.Ident, "expected method name")
		kind := ast.KindMethod
		if methodName.Lexeme == token.InitIdent {
			kind = ast.KindInitializer
		}
		methods = append(methods, p.parseFunction(&methodName, kind))
	}
	p.expect(token.RightBrace, "expected '}' after class body")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// parseFunction parses the parameter list and body shared by function declarations, methods and lambdas. name is
// nil for a lambda.
func (p *parser) parseFunction(name *token.Token, kind ast.FunctionKind) *ast.FunctionExpr {
	line := p.tok.Line
	p.expect(token.LeftParen, "expected '(' after function name")
	var params []token.Token
	if !p.tokIs(token.RightParen) {
		for {
			if len(params) >= token.MaxParams {
				p.addErrorf(p.tok.Line, "", "can't have more than %d parameters", token.MaxParams)
			}
			params = append(params, p.expect(token.Ident, "expected parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expected ')' after parameters")
	p.expect(token.LeftBrace, "expected '{' before function body")
	body := p.parseBlockStmts()
	return ast.NewFunctionExpr(name, params, body, kind, line)
}

func (p *parser) parseStmt() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.parsePrintStmt()
	case p.match(token.LeftBrace):
		return p.parseBlock()
	case p.match(token.If):
		return p.parseIfStmt()
	case p.match(token.While):
		return p.parseWhileStmt()
	case p.match(token.For):
		return p.parseForStmt()
	case p.match(token.Break):
		return p.parseBreakStmt()
	case p.match(token.Continue):
		return p.parseContinueStmt()
	case p.match(token.Return):
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *parser) parsePrintStmt() ast.Stmt {
	keyword := p.prevTok
	expr := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after value")
	return &ast.PrintStmt{Keyword: keyword, Expr: expr}
}

func (p *parser) parseBlock() ast.Stmt {
	leftBrace := p.prevTok
	stmts := p.parseBlockStmts()
	return &ast.BlockStmt{LeftBrace: leftBrace, Stmts: stmts}
}

func (p *parser) parseBlockStmts() []ast.Stmt {
	stmts := p.parseDeclsUntil(token.RightBrace, token.EOF)
	p.expect(token.RightBrace, "expected '}' after block")
	return stmts
}

func (p *parser) parseIfStmt() ast.Stmt {
	keyword := p.prevTok
	p.expect(token.LeftParen, "expected '(' after 'if'")
	condition := p.parseExpr()
	p.expect(token.RightParen, "expected ')' after if condition")
	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.match(token.Else) {
		elseStmt = p.parseStmt()
	}
	return &ast.IfStmt{Keyword: keyword, Condition: condition, Then: then, Else: elseStmt}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	keyword := p.prevTok
	p.expect(token.LeftParen, "expected '(' after 'while'")
	condition := p.parseExpr()
	p.expect(token.RightParen, "expected ')' after while condition")
	body := p.parseStmt()
	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

// parseForStmt desugars `for (init; cond; update) body` into:
//
//	{ init; while (cond) body }
//
// with update attached as the WhileStmt's Post expression, so that the rest of the pipeline only ever has to deal
// with WhileStmt. Post is kept out of Body itself (rather than appended as a sibling statement) so that `continue`
// inside body - which unwinds straight out of Body - still reaches the update: execWhileStmt runs Post after each
// iteration of Body regardless of whether it finished normally or via `continue`.
func (p *parser) parseForStmt() ast.Stmt {
	keyword := p.prevTok
	p.expect(token.LeftParen, "expected '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		initializer = p.parseVarDecl()
	default:
		initializer = p.parseExprStmt()
	}

	var condition ast.Expr
	if !p.tokIs(token.Semicolon) {
		condition = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after loop condition")

	var update ast.Expr
	if !p.tokIs(token.RightParen) {
		update = p.parseExpr()
	}
	p.expect(token.RightParen, "expected ')' after for clauses")

	body := p.parseStmt()
	if condition == nil {
		condition = &ast.LiteralExpr{Value: token.Token{Type: token.True, Lexeme: "true"}}
	}
	loop := ast.Stmt(&ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body, Post: update})
	if initializer != nil {
		loop = &ast.BlockStmt{LeftBrace: keyword, Stmts: []ast.Stmt{initializer, loop}}
	}
	return loop
}

func (p *parser) parseBreakStmt() ast.Stmt {
	keyword := p.prevTok
	p.expect(token.Semicolon, "expected ';' after 'break'")
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *parser) parseContinueStmt() ast.Stmt {
	keyword := p.prevTok
	p.expect(token.Semicolon, "expected ';' after 'continue'")
	return &ast.ContinueStmt{Keyword: keyword}
}

func (p *parser) parseReturnStmt() ast.Stmt {
	keyword := p.prevTok
	var value ast.Expr
	if !p.tokIs(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, "expected ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// Expression parsing, from lowest to highest precedence:
//
//	assignment -> ternary -> logic_or -> logic_and -> equality -> relational -> additive -> multiplicative -> unary -> call -> primary

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignmentExpr()
}

func (p *parser) parseAssignmentExpr() ast.Expr {
	expr := p.parseTernaryExpr()
	if p.match(token.Equal) {
		value := p.parseAssignmentExpr()
		switch left := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignmentExpr{Name: left.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: left.Object, Name: left.Name, Value: value}
		default:
			p.addErrorf(expr.Line(), "", "invalid assignment target")
		}
	}
	return expr
}

func (p *parser) parseTernaryExpr() ast.Expr {
	expr := p.parseLogicOrExpr()
	if p.match(token.Question) {
		then := p.parseExpr()
		p.expect(token.Colon, "expected ':' in ternary expression")
		elseExpr := p.parseTernaryExpr()
		expr = &ast.TernaryExpr{Condition: expr, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *parser) parseLogicOrExpr() ast.Expr {
	expr := p.parseLogicAndExpr()
	for p.tokIs(token.Or) {
		op := p.advance()
		right := p.parseLogicAndExpr()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseLogicAndExpr() ast.Expr {
	expr := p.parseEqualityExpr()
	for p.tokIs(token.And) {
		op := p.advance()
		right := p.parseEqualityExpr()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseEqualityExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseRelationalExpr, token.EqualEqual, token.BangEqual)
}

func (p *parser) parseRelationalExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseAdditiveExpr, token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}

func (p *parser) parseAdditiveExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseMultiplicativeExpr, token.Plus, token.Minus)
}

func (p *parser) parseMultiplicativeExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseUnaryExpr, token.Asterisk, token.Slash, token.Percent)
}

func (p *parser) parseBinaryExpr(next func() ast.Expr, types ...token.Type) ast.Expr {
	expr := next()
	for p.tokIs(types...) {
		op := p.advance()
		right := next()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) parseUnaryExpr() ast.Expr {
	if p.tokIs(token.Bang, token.Minus) {
		op := p.advance()
		right := p.parseUnaryExpr()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.parseCallExpr()
}

func (p *parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.expect(token.Ident, "expected property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.tokIs(token.RightParen) {
		for {
			if len(args) >= token.MaxParams {
				p.addErrorf(p.tok.Line, "", "can't have more than %d arguments", token.MaxParams)
			}
			args = append(args, p.parseAssignmentExpr())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.expect(token.RightParen, "expected ')' after arguments")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch {
	case p.tokIs(token.Number, token.String, token.True, token.False, token.Nil):
		return &ast.LiteralExpr{Value: p.advance()}
	case p.tokIs(token.Ident):
		return &ast.VariableExpr{Name: p.advance()}
	case p.tokIs(token.This):
		return &ast.ThisExpr{Keyword: p.advance()}
	case p.match(token.Super):
		keyword := p.prevTok
		p.expect(token.Dot, "expected '.' after 'super'")
		method := p.expect(token.Ident, "expected superclass method name")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(token.Fun):
		return p.parseFunction(nil, ast.KindLambda)
	case p.match(token.LeftParen):
		paren := p.prevTok
		expr := p.parseExpr()
		p.expect(token.RightParen, "expected ')' after expression")
		return &ast.GroupingExpr{Paren: paren, Expression: expr}
	default:
		p.addErrorf(p.tok.Line, p.tokDesc(p.tok), "expected expression")
		panic(unwind{})
	}
}

// ---- token stream helpers ----

func (p *parser) tokIs(types ...token.Type) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// match reports whether the current token is one of the given types and advances the parser if so.
func (p *parser) match(types ...token.Type) bool {
	if p.tokIs(types...) {
		p.next()
		return true
	}
	return false
}

// advance returns the current token and advances the parser.
func (p *parser) advance() token.Token {
	tok := p.tok
	p.next()
	return tok
}

// expect returns the current token and advances the parser if it has type t. Otherwise it reports msg and panics
// with unwind to abort the current statement.
func (p *parser) expect(t token.Type, msg string) token.Token {
	if p.tok.Type == t {
		return p.advance()
	}
	p.addErrorf(p.tok.Line, p.tokDesc(p.tok), "%s", msg)
	panic(unwind{})
}

func (p *parser) tokDesc(tok token.Token) string {
	if tok.Type == token.EOF {
		return "at end"
	}
	return "at '" + tok.Lexeme + "'"
}

func (p *parser) next() {
	p.prevTok = p.tok
	p.tok = p.next_
	p.next_ = p.lexer.Next()
}

func (p *parser) addErrorf(line int, where, format string, args ...any) {
	if len(p.errs) > 0 && line == p.lastErrLine {
		return
	}
	p.lastErrLine = line
	p.errs.AddAtf(line, where, format, args...)
}
