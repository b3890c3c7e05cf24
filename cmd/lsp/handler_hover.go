package main

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/prettyprinter"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
)

func (s *LanguageServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	file := s.fileOf(params.TextDocument.URI)
	if file == nil {
		return nil, nil
	}
	n := nodeAt(file, fromPosition(file.Path, params.Position))
	if n == nil {
		return nil, nil
	}

	s.mu.Lock()
	text := s.hoverText(n)
	s.mu.Unlock()
	if text == "" {
		return nil, nil
	}
	r := toRange(token.WindowOf(n.GetToken()))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
		Range:    &r,
	}, nil
}

// hoverText describes n: the header of the declaration it names plus its
// resolved type when analysis got that far.
func (s *LanguageServer) hoverText(n ast.Node) string {
	var decl ast.Node
	switch n := n.(type) {
	case *ast.ClassDecl, *ast.MethodDecl, *ast.ConstructorDecl, *ast.FieldDecl, *ast.VarDecl, *ast.Param:
		decl = n
	case ast.Bound:
		if n.IsBound() {
			if d := s.unit.Tree.Decl(n.Target()); d != s.unit.Tree.Invalid() {
				decl = d
			}
		}
	case *ast.TypeRef:
		if n.HasType() {
			if c, ok := n.Type().(*typesystem.ClassType); ok && !typesystem.IsInvalid(c) {
				if cd := s.unit.Tree.Class(c.Decl); cd != nil {
					decl = cd
				}
			}
		}
	}

	var b strings.Builder
	if decl != nil {
		fmt.Fprintf(&b, "```ofront\n%s\n```", prettyprinter.Header(decl))
	}
	if typed, ok := n.(ast.Typed); ok && typed.HasType() && !typesystem.IsInvalid(typed.Type()) {
		if _, isClass := n.(*ast.ClassDecl); !isClass {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "Type: `%s`", typed.Type())
		}
	}
	return b.String()
}
