package parser

import (
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
)

// parseClassDecl parses
//
//	class Name [T, U] extends Super is members end
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	class := &ast.ClassDecl{Token: p.curToken}
	p.open(class)
	start := p.curToken

	if !p.expectPeek(token.IDENT) {
		class.Set(ast.Broken)
		p.skipTo(token.END)
		p.close(class, start)
		return class
	}
	class.Name = p.curToken

	p.scopes.Enter(scope.Class)
	defer p.scopes.Leave()

	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		class.TypeParams = p.parseTypeParams()
	}

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if p.expectPeek(token.IDENT) {
			class.Super = p.parseTypeRef()
		}
	}

	if !p.expectPeek(token.IS) {
		class.Set(ast.Broken)
		p.skipTo(token.END)
		p.close(class, start)
		return class
	}

	p.scopes.Enter(scope.ClassBody)
	p.nextToken()
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		if m := p.parseMember(); m != nil {
			class.Members = append(class.Members, m)
			m.SetOwner(class.ID())
		}
		p.nextToken()
	}
	p.scopes.Leave()

	if !p.curTokenIs(token.END) {
		p.errorAt(p.curToken, "expected 'end' to close class "+class.Name.Lexeme)
	}
	p.close(class, start)
	return class
}

func (p *Parser) parseTypeParams() []*ast.TypeParam {
	var params []*ast.TypeParam
	for {
		if !p.expectPeek(token.IDENT) {
			p.skipTo(token.RBRACKET, token.IS)
			return params
		}
		tp := &ast.TypeParam{Name: p.curToken}
		p.open(tp)
		p.close(tp, p.curToken)
		params = append(params, tp)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.expectPeek(token.RBRACKET)
	return params
}

// parseTypeRef parses Name [ '[' TypeRef {',' TypeRef} ']' ] with curToken
// on the name.
func (p *Parser) parseTypeRef() *ast.TypeRef {
	ref := &ast.TypeRef{Name: p.curToken}
	p.open(ref)
	start := p.curToken
	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		ref.Args = p.parseTypeArgs()
	}
	p.close(ref, start)
	return ref
}

// parseTypeArgs parses a bracketed list of type references with curToken on
// the opening bracket.
func (p *Parser) parseTypeArgs() []*ast.TypeRef {
	var args []*ast.TypeRef
	for {
		if !p.expectPeek(token.IDENT) {
			return args
		}
		args = append(args, p.parseTypeRef())
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.expectPeek(token.RBRACKET)
	return args
}

func (p *Parser) parseMember() ast.Member {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseFieldDecl()
	case token.METHOD:
		return p.parseMethodDecl()
	case token.THIS:
		return p.parseConstructorDecl()
	default:
		p.errorAt(p.curToken, "expected a field, method or constructor, found "+describeToken(p.curToken))
		for !p.peekTokenIs(token.VAR) && !p.peekTokenIs(token.METHOD) && !p.peekTokenIs(token.THIS) &&
			!p.peekTokenIs(token.END) && !p.peekTokenIs(token.EOF) {
			p.nextToken()
		}
		return nil
	}
}

func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	field := &ast.FieldDecl{Token: p.curToken}
	p.open(field)
	start := p.curToken
	field.Name, field.Value = p.parseVarTail()
	if field.Value == nil {
		field.Set(ast.Broken)
	}
	p.close(field, start)
	return field
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	v := &ast.VarDecl{Token: p.curToken}
	p.open(v)
	start := p.curToken
	v.Name, v.Value = p.parseVarTail()
	if v.Value == nil {
		v.Set(ast.Broken)
	}
	p.close(v, start)
	return v
}

// parseVarTail parses "Ident ':' Expression" after 'var'. The initializer
// gets its own var-initializer scope.
func (p *Parser) parseVarTail() (token.Token, ast.Expression) {
	if !p.expectPeek(token.IDENT) {
		return token.Token{}, nil
	}
	name := p.curToken
	if !p.expectPeek(token.COLON) {
		return name, nil
	}
	p.nextToken()
	p.scopes.Enter(scope.VarInitializer)
	value := p.parseExpression()
	p.scopes.Leave()
	return name, value
}

// parseMethodDecl parses
//
//	method name(params) : Result is body end
//
// Without 'is' the method is a forward declaration.
func (p *Parser) parseMethodDecl() *ast.MethodDecl {
	m := &ast.MethodDecl{Token: p.curToken}
	p.open(m)
	start := p.curToken
	defer p.close(m, start)

	if !p.expectPeek(token.IDENT) {
		m.Set(ast.Broken)
		return m
	}
	m.Name = p.curToken

	p.scopes.Enter(scope.Method)
	defer p.scopes.Leave()

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		m.Params = p.parseParams()
	}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if p.expectPeek(token.IDENT) {
			m.Result = p.parseTypeRef()
		}
	}
	if !p.peekTokenIs(token.IS) {
		m.Forward = true
		return m
	}
	p.nextToken()
	m.Body = p.parseBody(scope.Body, token.END)
	return m
}

// parseConstructorDecl parses this(params) is body end.
func (p *Parser) parseConstructorDecl() *ast.ConstructorDecl {
	c := &ast.ConstructorDecl{Token: p.curToken}
	p.open(c)
	start := p.curToken
	defer p.close(c, start)

	p.scopes.Enter(scope.Method)
	defer p.scopes.Leave()

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		c.Params = p.parseParams()
	}
	if !p.peekTokenIs(token.IS) {
		c.Forward = true
		return c
	}
	p.nextToken()
	c.Body = p.parseBody(scope.Body, token.END)
	return c
}

// parseParams parses a parenthesised parameter list with curToken on '('.
func (p *Parser) parseParams() []*ast.Param {
	params := []*ast.Param{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	for {
		if !p.expectPeek(token.IDENT) {
			p.skipTo(token.RPAREN, token.IS, token.END)
			return params
		}
		param := &ast.Param{Name: p.curToken}
		p.open(param)
		start := p.curToken
		if p.expectPeek(token.COLON) && p.expectPeek(token.IDENT) {
			param.TypeRef = p.parseTypeRef()
		} else {
			param.Set(ast.Broken)
		}
		p.close(param, start)
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		p.skipTo(token.RPAREN, token.IS, token.END)
	}
	return params
}
