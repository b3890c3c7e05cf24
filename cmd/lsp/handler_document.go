package main

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/analyzer"
	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/pipeline"
)

func (s *LanguageServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	s.mu.Lock()
	s.documents[item.URI] = &DocumentState{
		URI:     item.URI,
		Path:    uriToPath(item.URI),
		Content: item.Text,
		Version: item.Version,
	}
	s.mu.Unlock()
	log.Debugf("opened %s", item.URI)

	s.analyze()
	s.publishAll(ctx.Notify)
	return nil
}

func (s *LanguageServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.documents[uri]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("document %s is not open", uri)
	}
	for _, change := range params.ContentChanges {
		// Full sync: only whole-document events are expected.
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			doc.Content = whole.Text
		}
	}
	doc.Version = params.TextDocument.Version
	s.mu.Unlock()

	s.analyze()
	s.publishAll(ctx.Notify)
	return nil
}

func (s *LanguageServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()
	log.Debugf("closed %s", uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	s.analyze()
	s.publishAll(ctx.Notify)
	return nil
}

// analyze runs the front end over every open document as one unit and
// keeps the result for hover, definition and formatting.
func (s *LanguageServer) analyze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.sortedDocuments()
	sources := make([]pipeline.Source, len(docs))
	for i, d := range docs {
		sources[i] = pipeline.Source{Path: d.Path, Code: d.Content}
	}

	unit, err := s.runPipeline(sources)
	if err != nil {
		log.Errorf("analysis failed: %s", err)
		return
	}
	s.unit = unit
	s.files = make(map[string]*ast.File, len(unit.Files))
	for _, f := range unit.Files {
		s.files[f.Path] = f
	}
}

func (s *LanguageServer) runPipeline(sources []pipeline.Source) (unit *pipeline.PipelineContext, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	unit, err = pipeline.NewContext(s.options, parser.Frontend{}, sources...)
	if err != nil {
		return nil, err
	}
	unit = pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(unit)
	log.Infof("unit %s: %d documents, %d diagnostics", unit.UnitID, len(sources), unit.Diagnostics.Len())
	return unit, nil
}
