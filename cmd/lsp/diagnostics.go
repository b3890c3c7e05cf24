package main

import (
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/funvibe/ofront/internal/diagnostics"
)

// publishAll sends the diagnostics of the last analysis for every open
// document. Documents without problems get an empty list so stale markers
// clear.
func (s *LanguageServer) publishAll(notify glsp.NotifyFunc) {
	s.mu.Lock()
	var diags []*diagnostics.Diagnostic
	if s.unit != nil {
		diags = s.unit.Diagnostics.Sorted()
	}
	var out []protocol.PublishDiagnosticsParams
	for _, doc := range s.sortedDocuments() {
		version := protocol.UInteger(doc.Version)
		out = append(out, protocol.PublishDiagnosticsParams{
			URI:         doc.URI,
			Version:     &version,
			Diagnostics: convertDiagnostics(diags, doc.Path),
		})
	}
	s.mu.Unlock()

	for _, params := range out {
		notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	}
}

// convertDiagnostics keeps the diagnostics anchored in filePath and maps
// their 1-based windows to 0-based ranges.
func convertDiagnostics(diags []*diagnostics.Diagnostic, filePath string) []protocol.Diagnostic {
	result := make([]protocol.Diagnostic, 0)
	targetPath := filepath.Clean(filePath)

	for _, d := range diags {
		if filepath.Clean(d.Window.Start.File) != targetPath {
			continue
		}
		severity := lspSeverity(d.Severity)
		source := lspName
		message := d.Summary
		if d.Extra != "" {
			message += "\n" + d.Extra
		}
		diag := protocol.Diagnostic{
			Range:    toRange(d.Window),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: string(d.Kind.Code())},
			Source:   &source,
			Message:  message,
		}
		for _, rel := range d.Related {
			diag.RelatedInformation = append(diag.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: pathToURI(rel.Window.Start.File), Range: toRange(rel.Window)},
				Message:  rel.Name,
			})
		}
		result = append(result, diag)
	}

	return result
}

func lspSeverity(s diagnostics.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostics.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diagnostics.SeverityNote:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}
