package main

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/config"
)

func (s *LanguageServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil && *params.RootURI != "" {
		s.rootPath = uriToPath(*params.RootURI)
	} else if params.RootPath != nil && *params.RootPath != "" {
		s.rootPath = *params.RootPath
	}
	s.loadOptions()
	log.Infof("initializing, root %q", s.rootPath)

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.HoverProvider = true
	capabilities.DefinitionProvider = true
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

// loadOptions picks up the workspace's ofront.yaml or ofront.toml. A broken
// config is logged and the defaults stay in effect.
func (s *LanguageServer) loadOptions() {
	if s.rootPath == "" {
		return
	}
	path, err := config.FindConfig(s.rootPath)
	if err != nil || path == "" {
		return
	}
	opts, err := config.Load(path)
	if err != nil {
		log.Warningf("ignoring %s: %s", path, err)
		return
	}
	s.mu.Lock()
	s.options = opts
	s.mu.Unlock()
}

func (s *LanguageServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *LanguageServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *LanguageServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
