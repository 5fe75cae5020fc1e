package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mono/internal/config"
	"mono/internal/lsp"
)

const testURI = "file:///work/test.mono"

type published struct {
	uri         string
	diagnostics []protocol.Diagnostic
}

func newContext(out *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			p := params.(*protocol.PublishDiagnosticsParams)
			*out = append(*out, published{uri: p.URI, diagnostics: p.Diagnostics})
		},
	}
}

func open(t *testing.T, h *lsp.MonoHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "mono", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	h := lsp.NewMonoHandler(config.Default().Limits)

	res, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	result := res.(*protocol.InitializeResult)
	assert.Equal(t, true, result.Capabilities.HoverProvider)
	assert.Equal(t, true, result.Capabilities.DocumentFormattingProvider)
	require.NotNil(t, result.Capabilities.SemanticTokensProvider)
}

func TestDidOpenPublishesNoDiagnosticsForValidSource(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)

	open(t, h, newContext(&out), "x = 1\ny = x * 2\n")

	require.Len(t, out, 1)
	assert.Equal(t, testURI, out[0].uri)
	assert.Empty(t, out[0].diagnostics)
}

func TestDidOpenReportsParseError(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)

	open(t, h, newContext(&out), "x = 1\ny = (2 + 3\n")

	require.Len(t, out, 1)
	require.Len(t, out[0].diagnostics, 1)
	d := out[0].diagnostics[0]
	assert.Equal(t, "mono", *d.Source)
	assert.Equal(t, "E0202", d.Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
}

func TestDidOpenReportsRuntimeError(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)

	open(t, h, newContext(&out), "count = 1\ncount + cout\n")

	require.Len(t, out[0].diagnostics, 1)
	d := out[0].diagnostics[0]
	assert.Equal(t, "E0301", d.Code.Value)
	assert.Equal(t, uint32(1), d.Range.Start.Line)
	assert.Equal(t, uint32(8), d.Range.Start.Character)
	assert.Equal(t, uint32(12), d.Range.End.Character)
	assert.Contains(t, d.Message, "did you mean 'count'?")
}

func TestDidChangeAppliesRangedEdits(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)

	open(t, h, ctx, "x = 1 / 0\n")
	require.Len(t, out[0].diagnostics, 1)
	assert.Equal(t, "E0303", out[0].diagnostics[0].Code.Value)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 8},
					End:   protocol.Position{Line: 0, Character: 9},
				},
				Text: "4",
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Empty(t, out[1].diagnostics)

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, "```mono\nx: float = 0.25\n```", hover.Contents.(protocol.MarkupContent).Value)
}

func TestDidChangeReplacesWholeDocument(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)

	open(t, h, ctx, "1 +\n")
	require.Len(t, out[0].diagnostics, 1)

	err := h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "1 + 1\n"}},
	})
	require.NoError(t, err)
	assert.Empty(t, out[1].diagnostics)
}

func TestDidChangeUnknownDocument(t *testing.T) {
	h := lsp.NewMonoHandler(config.Default().Limits)
	err := h.TextDocumentDidChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	assert.Error(t, err)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)

	open(t, h, ctx, "1 +\n")
	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	require.Len(t, out, 2)
	assert.Empty(t, out[1].diagnostics)

	_, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)
	open(t, h, ctx, "alpha = 1\nbeta = \"b\"\n")

	res, err := h.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list := res.(*protocol.CompletionList)
	labels := map[string]*string{}
	for _, item := range list.Items {
		labels[item.Label] = item.Detail
	}
	assert.Contains(t, labels, "not")
	assert.Contains(t, labels, "none")
	require.Contains(t, labels, "alpha")
	require.Contains(t, labels, "beta")
	assert.Equal(t, "integer", *labels["alpha"])
	assert.Equal(t, "string", *labels["beta"])
}

func TestHoverOutsideIdentifier(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)
	open(t, h, ctx, "x = 10\n")

	hover, err := h.TextDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: 0, Character: 5},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestFormatting(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)
	open(t, h, ctx, "x=1+2\n\n\ny=x*3")

	edits, err := h.TextDocumentFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "x = 1 + 2\n\ny = x * 3\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 3, Character: 5}, edits[0].Range.End)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)
	open(t, h, ctx, "total = 1.5 * 2\nok = not (total >= 3) and \"s\" != none\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 13)

	assertToken(t, &decoded[0], 1, 1, 5, "variable", []string{"declaration"})
	assertToken(t, &decoded[1], 1, 9, 3, "number", nil)
	assertToken(t, &decoded[2], 1, 13, 1, "operator", nil)
	assertToken(t, &decoded[3], 1, 15, 1, "number", nil)
	assertToken(t, &decoded[4], 2, 1, 2, "variable", []string{"declaration"})
	assertToken(t, &decoded[5], 2, 6, 3, "keyword", nil)
	assertToken(t, &decoded[6], 2, 11, 5, "variable", nil)
	assertToken(t, &decoded[7], 2, 17, 2, "operator", nil)
	assertToken(t, &decoded[8], 2, 20, 1, "number", nil)
	assertToken(t, &decoded[9], 2, 23, 3, "keyword", nil)
	assertToken(t, &decoded[10], 2, 27, 3, "string", nil)
	assertToken(t, &decoded[11], 2, 31, 2, "operator", nil)
	assertToken(t, &decoded[12], 2, 34, 4, "keyword", nil)
}

func TestSemanticTokensForBrokenSourceAreEmpty(t *testing.T) {
	var out []published
	h := lsp.NewMonoHandler(config.Default().Limits)
	ctx := newContext(&out)
	open(t, h, ctx, "x = (1\n")

	tokens, err := h.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
