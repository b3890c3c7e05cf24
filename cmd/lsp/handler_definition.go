package main

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/ids"
	"github.com/funvibe/ofront/internal/token"
	"github.com/funvibe/ofront/internal/typesystem"
)

func (s *LanguageServer) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	file := s.fileOf(params.TextDocument.URI)
	if file == nil {
		return nil, nil
	}
	n := nodeAt(file, fromPosition(file.Path, params.Position))
	if n == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.definitionOf(n)
	if target == nil {
		return nil, nil
	}
	w := token.WindowOf(target.GetToken())
	return protocol.Location{URI: pathToURI(w.Start.File), Range: toRange(w)}, nil
}

// definitionOf returns the declaration n refers to. Built-in classes have
// no source to jump to.
func (s *LanguageServer) definitionOf(n ast.Node) ast.Node {
	var id ids.NodeID
	switch n := n.(type) {
	case *ast.Reference:
		if n.Constructor.IsBound() {
			id = n.Constructor.Target()
		} else if n.IsBound() {
			id = n.Target()
		}
	case *ast.MemberAccess:
		if n.IsBound() {
			id = n.Target()
		}
	case *ast.TypeRef:
		if n.HasType() {
			if c, ok := n.Type().(*typesystem.ClassType); ok && !typesystem.IsInvalid(c) {
				id = c.Decl
			}
		}
	}
	if !id.IsValid() {
		return nil
	}
	target := s.unit.Tree.Node(id)
	if target == nil || target.Has(ast.BuiltIn) || target == ast.Node(s.unit.Tree.Invalid()) {
		return nil
	}
	return target
}
