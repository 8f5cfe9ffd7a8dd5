package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"goc/internal/compiler"
	"goc/internal/ir"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"variable",
	"keyword",
	"number",
	"operator",
	"comment",
	"function",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
}

// GocHandler implements the LSP server handlers for goc sources
type GocHandler struct {
	mu      sync.RWMutex
	content map[string]string
	docs    map[string]*compiler.Result
	options compiler.Options
}

// NewGocHandler creates and returns a new GocHandler instance
func NewGocHandler() *GocHandler {
	return NewGocHandlerWithOptions(compiler.DefaultOptions())
}

// NewGocHandlerWithOptions creates a handler that compiles with opts
func NewGocHandlerWithOptions(opts compiler.Options) *GocHandler {
	return &GocHandler{
		content: make(map[string]string),
		docs:    make(map[string]*compiler.Result),
		options: opts,
	}
}

func logger() commonlog.Logger {
	return commonlog.GetLogger("goc.lsp")
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *GocHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	logger().Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *GocHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	logger().Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *GocHandler) Shutdown(ctx *glsp.Context) error {
	logger().Info("shutdown")
	return nil
}

// SetTrace updates the protocol trace level requested by the client
func (h *GocHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen compiles the opened text and publishes its diagnostics
func (h *GocHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	logger().Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange recompiles on every full-text change
func (h *GocHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	logger().Debugf("changed %s", params.TextDocument.URI)

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			if err := h.update(ctx, params.TextDocument.URI, c.Text); err != nil {
				return err
			}
		case protocol.TextDocumentContentChangeEvent:
			logger().Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		}
	}
	return nil
}

// TextDocumentDidClose forgets the document
func (h *GocHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	logger().Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.docs, path)

	return nil
}

// TextDocumentHover shows the SSA listing of the document
func (h *GocHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	if doc.Function == nil || !doc.Function.SSA {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```\n" + ir.PrintListing(doc.Function) + "```",
		},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *GocHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	if _, err := h.document(ctx, params.TextDocument.URI); err != nil {
		return nil, err
	}

	h.mu.RLock()
	text := h.content[path]
	h.mu.RUnlock()

	tokens, err := collectSemanticTokens(path, text)
	if err != nil {
		// an unlexable document has no tokens; its diagnostics say why
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func (h *GocHandler) update(ctx *glsp.Context, rawURI protocol.DocumentUri, text string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	doc := compiler.Compile(path, text, h.options)

	h.mu.Lock()
	h.content[path] = text
	h.docs[path] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, rawURI, ConvertCompilerErrors(doc.Errors))
	return nil
}

// document returns the compiled state of rawURI, reading it from disk when
// the client never opened it
func (h *GocHandler) document(ctx *glsp.Context, rawURI protocol.DocumentUri) (*compiler.Result, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := h.update(ctx, rawURI, string(content)); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.docs[path], nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to get C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	logger().Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
