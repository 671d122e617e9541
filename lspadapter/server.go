// Package lspadapter implements a minimal Language Server Protocol server
// over this module's validator: open/change/close a document, parse and
// validate it, and publish the resulting diagnostics. It does not attempt
// completion, hover, go-to-definition, or any of the other editor-facing
// features go.lsp.dev/protocol's Server interface exposes — §1's "a
// downstream IDE needs Diagnostic translated and published" is the whole
// job here, everything else is a stub.
package lspadapter

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	gql "github.com/iso-gql/gqlfront"
	"github.com/iso-gql/gqlfront/validator"
)

// Server implements go.lsp.dev/protocol's Server interface for GQL.
type Server struct {
	client protocol.Client
	logger *zap.Logger
	newV   func() *validator.SemanticValidator

	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*document

	initialized bool
	shutdown    bool
}

type document struct {
	uri     protocol.DocumentURI
	version int32
	content string
	outcome gql.ValidationOutcome
}

// NewServer creates an LSP server. newV (if non-nil) builds a fresh
// SemanticValidator per analysis pass, letting callers wire a
// MetadataProvider the same way cmd/gql-lsp's main.go does; nil uses an
// unconfigured default validator.
func NewServer(client protocol.Client, logger *zap.Logger, newV func() *validator.SemanticValidator) *Server {
	if newV == nil {
		newV = validator.New
	}

	return &Server{
		client:    client,
		logger:    logger,
		newV:      newV,
		documents: make(map[protocol.DocumentURI]*document),
	}
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize", zap.Any("params", params))

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "gql-lsp",
			Version: "0.1.0",
		},
	}, nil
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized")
	s.initialized = true

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")
	s.shutdown = true

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")
	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &document{
		uri:     params.TextDocument.URI,
		version: params.TextDocument.Version,
		content: params.TextDocument.Text,
	}
	doc.outcome = gql.ParseAndValidate(doc.content, s.newV())

	s.mu.Lock()
	s.documents[doc.uri] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidChange handles textDocument/didChange notifications.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Info("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	s.mu.Lock()
	doc, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(params.TextDocument.URI)))
		return nil
	}

	if len(params.ContentChanges) == 0 {
		return nil
	}

	doc.content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.version = params.TextDocument.Version
	doc.outcome = gql.ParseAndValidate(doc.content, s.newV())

	s.mu.Lock()
	s.documents[doc.uri] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidClose handles textDocument/didClose notifications.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("Failed to clear diagnostics", zap.Error(err))
	}

	return nil
}

// DidSave handles textDocument/didSave notifications.
func (s *Server) DidSave(_ context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))
	return nil
}
