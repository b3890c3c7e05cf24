package main

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/prettyprinter"
)

// textDocumentFormatting replaces the whole document with its canonical
// rendering. A document with syntax errors is left alone: its tree is
// incomplete and printing it would drop text.
func (s *LanguageServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	log.Debugf("formatting %s", uri)

	doc := s.document(uri)
	file := s.fileOf(uri)
	if doc == nil || file == nil {
		return []protocol.TextEdit{}, nil
	}

	s.mu.Lock()
	for _, d := range s.unit.Diagnostics.OfKind(diagnostics.SyntaxError) {
		if d.Window.Start.File == doc.Path {
			s.mu.Unlock()
			return []protocol.TextEdit{}, nil
		}
	}
	formatted := prettyprinter.Format(file)
	s.mu.Unlock()

	if formatted == doc.Content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{Start: protocol.Position{}, End: endOf(doc.Content)},
		NewText: formatted,
	}}, nil
}
