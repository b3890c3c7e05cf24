package parser

import (
	"errors"
	"fmt"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/lexer"
	"github.com/funvibe/ofront/internal/scope"
	"github.com/funvibe/ofront/internal/token"
)

// Parser is a recursive-descent parser over a flat token slice. Parse
// functions start with curToken on the first token of their construct and
// return with curToken on its last token.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	tree   *ast.Tree
	scopes *scope.Builder
	errors []error
}

func New(tree *ast.Tree, tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{
		tokens: tokens,
		pos:    -1,
		tree:   tree,
		scopes: tree.Scopes(),
	}
	p.nextToken()
	return p
}

// Parse builds one file from tokens and appends it to the tree. Every node
// is added to the tree's arena and gets its scope from the tree's shared
// scope builder.
func Parse(tree *ast.Tree, path string, tokens []token.Token) (*ast.File, []error) {
	p := New(tree, tokens)
	f := p.ParseFile(path)
	return f, p.errors
}

func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) ParseFile(path string) *ast.File {
	p.scopes.Reset()
	f := &ast.File{Path: path}
	p.open(f)
	start := p.curToken

	for !p.curTokenIs(token.EOF) {
		before := p.pos
		var item ast.Node
		if p.curTokenIs(token.CLASS) {
			if c := p.parseClassDecl(); c != nil {
				item = c
			}
		} else if stmt := p.parseStatement(); stmt != nil {
			item = stmt
		}
		if item != nil {
			f.Items = append(f.Items, item)
		}
		p.nextToken()
		if p.pos == before {
			break
		}
	}

	f.SetWindow(token.Window{Start: start.Position, End: p.curToken.Position})
	p.tree.AddFile(f)
	return f
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	if p.pos+1 < len(p.tokens) {
		p.peekToken = p.tokens[p.pos+1]
	} else {
		p.peekToken = p.curToken
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorAt(p.peekToken, fmt.Sprintf("expected %s, found %s", describe(t), describeToken(p.peekToken)))
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	if tok.Type == token.ILLEGAL {
		msg = fmt.Sprintf("illegal token %q", tok.Lexeme)
		if reason, ok := tok.Literal.(string); ok && reason != "" {
			msg += ": " + reason
		}
	}
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.NewSyntaxError(msg), token.WindowOf(tok)))
}

// skipTo advances until curToken is one of the given types or EOF, without
// consuming it. Used to resynchronise after a syntax error.
func (p *Parser) skipTo(types ...token.TokenType) {
	for !p.curTokenIs(token.EOF) {
		for _, t := range types {
			if p.curTokenIs(t) {
				return
			}
		}
		p.nextToken()
	}
}

type node interface {
	ast.Node
	SetScope(id scope.ID)
	SetWindow(w token.Window)
}

// open registers n in the arena under the current scope.
func (p *Parser) open(n node) {
	n.SetScope(p.scopes.Current())
	p.tree.Add(n)
}

// close sets n's window from start up to the current token.
func (p *Parser) close(n node, start token.Token) {
	n.SetWindow(token.Window{Start: start.Position, End: p.curToken.End()})
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of file"
	default:
		return fmt.Sprintf("'%s'", lowerKeyword(t))
	}
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT, token.INT, token.REAL:
		return fmt.Sprintf("%q", tok.Lexeme)
	default:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	}
}

func lowerKeyword(t token.TokenType) string {
	for _, r := range t {
		if r < 'A' || r > 'Z' {
			return string(t)
		}
	}
	b := []byte(t)
	for i := range b {
		b[i] += 'a' - 'A'
	}
	return string(b)
}

// Frontend lexes and parses source text into a tree. It is the collaborator
// the type registry uses to bootstrap the built-in classes.
type Frontend struct{}

func (Frontend) Parse(tree *ast.Tree, path, src string) (*ast.File, error) {
	f, errs := Parse(tree, path, lexer.Tokenize(path, src))
	return f, errors.Join(errs...)
}
