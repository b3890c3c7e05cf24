package parser

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
)

// parseBody parses statements up to (not including) one of the terminators,
// inside a freshly entered scope of the given kind. curToken is on the token
// that opened the body on entry, and on the terminator on return.
func (p *Parser) parseBody(kind scope.Kind, terminators ...token.TokenType) []ast.Statement {
	p.scopes.Enter(kind)
	defer p.scopes.Leave()

	body := []ast.Statement{}
	p.nextToken()
	for !p.atAny(terminators...) && !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) {
		p.errorAt(p.curToken, "expected 'end', found end of file")
	}
	return body
}

func (p *Parser) atAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.WHILE:
		return p.parseWhileLoop()
	case token.IF:
		return p.parseIfStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.CLASS:
		p.errorAt(p.curToken, "class declarations are only allowed at the top level")
		p.skipTo(token.END)
		return nil
	case token.END, token.ELSE, token.LOOP, token.THEN, token.IS:
		p.errorAt(p.curToken, "unexpected "+describeToken(p.curToken))
		return nil
	}

	start := p.curToken
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(token.ASSIGN) {
		stmt := &ast.Assignment{Target: expr}
		p.open(stmt)
		p.nextToken()
		stmt.Token = p.curToken
		p.nextToken()
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			stmt.Set(ast.Broken)
		}
		p.close(stmt, start)
		return stmt
	}

	stmt := &ast.ExprStatement{Expr: expr}
	p.open(stmt)
	stmt.SetWindow(expr.Window())
	return stmt
}

// parseWhileLoop parses while cond loop body end.
func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	loop := &ast.WhileLoop{Token: p.curToken}
	p.open(loop)
	start := p.curToken

	p.nextToken()
	loop.Condition = p.parseExpression()
	if loop.Condition == nil {
		loop.Set(ast.Broken)
	}
	if !p.expectPeek(token.LOOP) {
		loop.Set(ast.Broken)
		p.skipTo(token.LOOP, token.END)
		if !p.curTokenIs(token.LOOP) {
			p.close(loop, start)
			return loop
		}
	}
	loop.Body = p.parseBody(scope.WhileBody, token.END)
	p.close(loop, start)
	return loop
}

// parseIfStatement parses if cond then body [else body] end.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.open(stmt)
	start := p.curToken

	p.nextToken()
	stmt.Condition = p.parseExpression()
	if stmt.Condition == nil {
		stmt.Set(ast.Broken)
	}
	if !p.expectPeek(token.THEN) {
		stmt.Set(ast.Broken)
		p.skipTo(token.THEN, token.END)
		if !p.curTokenIs(token.THEN) {
			p.close(stmt, start)
			return stmt
		}
	}
	stmt.Then = p.parseBody(scope.Body, token.ELSE, token.END)
	if p.curTokenIs(token.ELSE) {
		stmt.Else = p.parseBody(scope.Body, token.END)
	}
	p.close(stmt, start)
	return stmt
}

// parseReturnStatement parses return [value]. The value must start on the
// same line as 'return'.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.open(stmt)
	start := p.curToken

	if p.peekToken.Line == p.curToken.Line && startsExpression(p.peekToken.Type) {
		p.nextToken()
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			stmt.Set(ast.Broken)
		}
	}
	p.close(stmt, start)
	return stmt
}

func startsExpression(t token.TokenType) bool {
	switch t {
	case token.INT, token.REAL, token.TRUE, token.FALSE, token.THIS, token.IDENT, token.LPAREN:
		return true
	}
	return false
}
