package lsp

import (
	"mono/internal/errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertError turns a lexical, parse or runtime error into an LSP
// diagnostic carrying the same code, message and hints the CLI prints.
func ConvertError(err error, names []string, lines lineIndex) []protocol.Diagnostic {
	if err == nil {
		return nil
	}
	ce := errors.FromError(err, names)

	length := max(ce.Length, 1)
	start := lines.toLSP(ce.Position.Line, ce.Position.Column)
	end := lines.toLSP(ce.Position.Line, ce.Position.Column+length)
	if end.Character <= start.Character {
		end.Character = start.Character + 1
	}

	message := []string{ce.Message}
	for _, s := range ce.Suggestions {
		message = append(message, "help: "+s.Message)
	}
	for _, note := range ce.Notes {
		message = append(message, "note: "+note)
	}
	if ce.HelpText != "" {
		message = append(message, "help: "+ce.HelpText)
	}

	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString("mono"),
		Message:  strings.Join(message, "\n"),
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
