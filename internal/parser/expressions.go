package parser

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
)

// parseExpression parses a primary followed by any number of member
// accesses: a.b.c(1).d
func (p *Parser) parseExpression() ast.Expression {
	start := p.curToken
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		access := &ast.MemberAccess{Object: left, Dot: p.curToken}
		p.open(access)
		p.nextToken()
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.THIS) {
			p.errorAt(p.curToken, "expected member name after '.', found "+describeToken(p.curToken))
			access.Set(ast.Broken)
			p.close(access, start)
			return access
		}
		access.Member = p.curToken
		if p.callFollows() {
			p.nextToken()
			access.Args = p.parseArgs()
			access.IsCall = true
		}
		p.close(access, start)
		left = access
	}
	return left
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		lit := &ast.IntegerLiteral{Token: p.curToken}
		lit.Value, _ = p.curToken.Literal.(int64)
		p.open(lit)
		p.close(lit, p.curToken)
		return lit
	case token.REAL:
		lit := &ast.RealLiteral{Token: p.curToken}
		lit.Value, _ = p.curToken.Literal.(float64)
		p.open(lit)
		p.close(lit, p.curToken)
		return lit
	case token.TRUE, token.FALSE:
		lit := &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
		p.open(lit)
		p.close(lit, p.curToken)
		return lit
	case token.THIS:
		this := &ast.ThisExpr{Token: p.curToken}
		p.open(this)
		p.close(this, p.curToken)
		return this
	case token.IDENT:
		return p.parseReference()
	case token.LPAREN:
		p.scopes.Enter(scope.Expression)
		defer p.scopes.Leave()
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			p.skipTo(token.RPAREN)
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return inner
	default:
		p.errorAt(p.curToken, "expected an expression, found "+describeToken(p.curToken))
		return nil
	}
}

// parseReference parses Ident [TypeArgs] [Args].
func (p *Parser) parseReference() *ast.Reference {
	ref := &ast.Reference{Name: p.curToken}
	p.open(ref)
	start := p.curToken
	if p.peekTokenIs(token.LBRACKET) && p.peekToken.Line == p.curToken.Line {
		p.nextToken()
		ref.TypeArgs = p.parseTypeArgs()
	}
	if p.callFollows() {
		p.nextToken()
		ref.Args = p.parseArgs()
		ref.IsCall = true
	}
	p.close(ref, start)
	return ref
}

// callFollows reports whether the next token opens an argument list. The
// parenthesis must be on the same line as the callee.
func (p *Parser) callFollows() bool {
	return p.peekTokenIs(token.LPAREN) && p.peekToken.Line == p.curToken.Line
}

// parseArgs parses a parenthesised argument list with curToken on '('.
func (p *Parser) parseArgs() []ast.Expression {
	args := []ast.Expression{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	for {
		if arg := p.parseExpression(); arg != nil {
			args = append(args, arg)
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		p.skipTo(token.RPAREN, token.END)
	}
	return args
}
