package main

import (
	"sort"
	"sync"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/funvibe/ofront/internal/ast"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/pipeline"
)

const lspName = "ofront-lsp"

var log = commonlog.GetLogger("ofront.lsp")

// LanguageServer analyzes every open document as one compilation unit, so
// classes declared in one document resolve in the others.
type LanguageServer struct {
	mu        sync.Mutex
	documents map[protocol.DocumentUri]*DocumentState
	options   *config.Options
	rootPath  string

	unit  *pipeline.PipelineContext // result of the last analysis
	files map[string]*ast.File      // parsed user files of unit, by path

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// DocumentState is the editor's copy of one open document.
type DocumentState struct {
	URI     protocol.DocumentUri
	Path    string
	Content string
	Version protocol.Integer
}

func NewLanguageServer() *LanguageServer {
	s := &LanguageServer{
		documents: make(map[protocol.DocumentUri]*DocumentState),
		options:   config.Default(),
		files:     make(map[string]*ast.File),
		version:   "0.1.0",
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:      s.textDocumentHover,
		TextDocumentDefinition: s.textDocumentDefinition,
		TextDocumentFormatting: s.textDocumentFormatting,
	}
	s.server = glspserver.NewServer(&s.handler, lspName, false)
	return s
}

// Run serves the protocol on stdio until the client disconnects.
func (s *LanguageServer) Run() error {
	return s.server.RunStdio()
}

// sortedDocuments returns the open documents ordered by path, the order
// they are parsed in.
func (s *LanguageServer) sortedDocuments() []*DocumentState {
	docs := make([]*DocumentState, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

func (s *LanguageServer) document(uri protocol.DocumentUri) *DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents[uri]
}

// fileOf returns the parsed file of uri from the last analysis.
func (s *LanguageServer) fileOf(uri protocol.DocumentUri) *ast.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.documents[uri]
	if doc == nil {
		return nil
	}
	return s.files[doc.Path]
}

func boolPtr(b bool) *bool {
	return &b
}
