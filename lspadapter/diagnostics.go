package lspadapter

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	gql "github.com/iso-gql/gqlfront"
	"github.com/iso-gql/gqlfront/lexer"
)

// publishDiagnostics converts doc's validation outcome to LSP diagnostics
// and sends them to the client.
func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.outcome.Diagnostics))

	for _, d := range doc.outcome.Diagnostics {
		diagnostics = append(diagnostics, convertDiagnostic(doc.content, d))
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     uint32(doc.version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

// convertDiagnostic converts a gql.Diagnostic into an LSP protocol.Diagnostic,
// resolving its byte-offset Span against source with lexer.Locate.
func convertDiagnostic(source string, d gql.Diagnostic) protocol.Diagnostic {
	related := make([]protocol.DiagnosticRelatedInformation, 0, len(d.Labels))

	for _, l := range d.Labels {
		related = append(related, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{Range: spanToRange(source, l.Span)},
			Message:  l.Note,
		})
	}

	return protocol.Diagnostic{
		Range:              spanToRange(source, d.Span),
		Severity:           convertSeverity(d.Severity),
		Code:               d.Code,
		Source:             "gqlfront",
		Message:            d.Message,
		RelatedInformation: related,
	}
}

func convertSeverity(sev gql.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case gql.SeverityError:
		return protocol.DiagnosticSeverityError
	case gql.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case gql.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// spanToRange converts a byte-offset gql.Span into an LSP protocol.Range,
// deriving 1-based line/column via lexer.Locate and then rebasing to
// LSP's 0-based convention.
func spanToRange(source string, span gql.Span) protocol.Range {
	start := lexer.Locate(source, span.Start)
	end := lexer.Locate(source, span.End)

	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(max(0, start.Line-1)),   //nolint:gosec // small line numbers
			Character: uint32(max(0, start.Column-1)), //nolint:gosec // small column numbers
		},
		End: protocol.Position{
			Line:      uint32(max(0, end.Line-1)),   //nolint:gosec // small line numbers
			Character: uint32(max(0, end.Column-1)), //nolint:gosec // small column numbers
		},
	}
}
