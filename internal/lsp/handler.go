package lsp

import (
	"fmt"
	"mono/grammar"
	"mono/internal/config"
	"mono/internal/evaluator"
	"slices"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SemanticTokenTypes is the token type legend advertised to clients.
var SemanticTokenTypes = []string{
	"variable",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the modifier legend; declaration marks
// assignment targets.
var SemanticTokenModifiers = []string{
	"declaration",
}

// MonoHandler implements the LSP server handlers for mono source files.
// Documents are kept in memory and re-analysed on every change.
type MonoHandler struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*Document
	limits    config.LimitsConfig
	log       commonlog.Logger
}

// NewMonoHandler creates a handler using the given recursion limits.
func NewMonoHandler(limits config.LimitsConfig) *MonoHandler {
	return &MonoHandler{
		documents: make(map[protocol.DocumentUri]*Document),
		limits:    limits,
		log:       commonlog.GetLogger("mono.lsp"),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *MonoHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindIncremental),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider:              true,
			DocumentFormattingProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "mono-lsp",
		},
	}, nil
}

func (h *MonoHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.log.Info("initialized")
	return nil
}

func (h *MonoHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	return nil
}

func (h *MonoHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen analyses the opened document and publishes diagnostics
func (h *MonoHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debug("opened", "uri", uri)

	doc := NewDocument(uri, params.TextDocument.Text, h.limits)

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, doc.Diagnostics)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *MonoHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debug("closed", "uri", uri)

	h.mu.Lock()
	delete(h.documents, uri)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDidChange applies full or ranged edits and re-analyses
func (h *MonoHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debug("changed", "uri", uri, "changes", len(params.ContentChanges))

	h.mu.Lock()
	doc, ok := h.documents[uri]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("document not open: %s", uri)
	}

	text := doc.Text
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
			} else {
				text = applyEdit(text, *c.Range, c.Text)
			}
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		}
	}

	doc = NewDocument(uri, text, h.limits)
	h.documents[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, doc.Diagnostics)
	return nil
}

var keywords = []string{"true", "false", "none", "not", "and", "or"}

// TextDocumentCompletion offers keywords and every variable the document
// assigns.
func (h *MonoHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	var items []protocol.CompletionItem

	keywordKind := protocol.CompletionItemKindKeyword
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
	}

	if doc := h.document(params.TextDocument.URI); doc != nil {
		variableKind := protocol.CompletionItemKindVariable
		for _, name := range doc.Names() {
			item := protocol.CompletionItem{Label: name, Kind: &variableKind}
			if v, ok := doc.Env.Get(name); ok {
				item.Detail = ptrString(v.Kind().String())
			}
			items = append(items, item)
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentHover shows the value bound to the identifier under the cursor
// after running the document.
func (h *MonoHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := h.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	name, rng, ok := doc.IdentAt(params.Position)
	if !ok {
		return nil, nil
	}

	value := "undefined"
	if v, ok := doc.Env.Get(name); ok {
		value = fmt.Sprintf("%s = %s", v.Kind(), evaluator.Repr(v))
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```mono\n%s: %s\n```", name, value),
		},
		Range: &rng,
	}, nil
}

// TextDocumentFormatting replaces the document with its canonical layout.
// Documents with syntax errors are left untouched.
func (h *MonoHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := h.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	formatted, err := grammar.Format(doc.URI, doc.Text)
	if err != nil {
		h.log.Debug("format skipped", "uri", doc.URI, "error", err)
		return nil, nil
	}
	if formatted == doc.Text {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   endPosition(doc.Text),
		},
		NewText: formatted,
	}}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *MonoHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := h.document(params.TextDocument.URI)
	if doc == nil {
		return nil, fmt.Errorf("document not open: %s", params.TextDocument.URI)
	}

	tokens := collectSemanticTokens(doc.Program, doc.lines)
	slices.SortFunc(tokens, func(a, b SemanticToken) int {
		if a.Line != b.Line {
			return int(a.Line) - int(b.Line)
		}
		return int(a.StartChar) - int(b.StartChar)
	})

	data := []uint32{}
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

func (h *MonoHandler) document(uri protocol.DocumentUri) *Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.documents[uri]
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrString(s string) *string {
	return &s
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
