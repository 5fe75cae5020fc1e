package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"mono/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const Error ErrorLevel = "error"

// CompilerError is a coded diagnostic ready for rendering. Lexical, parse
// and runtime failures are all converted into this shape by FromError.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // E0101, E0203, ...
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter handles consistent error formatting and suggestions
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file. An empty filename
// is shown as <stdin>.
func NewErrorReporter(filename, source string) *ErrorReporter {
	if filename == "" {
		filename = "<stdin>"
	}
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// Report converts err and formats it. names are the variables in scope, used
// for "did you mean" suggestions.
func (er *ErrorReporter) Report(err error, names []string) string {
	return er.FormatError(FromError(err, names))
}

// FormatError renders err as a header line, the source location, up to three
// lines of context with a caret marker, then suggestions, notes and help.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	header := string(err.Level)
	if err.Code != "" {
		header = fmt.Sprintf("%s[%s]", err.Level, err.Code)
	}
	fmt.Fprintf(&b, "%s: %s\n", levelColor(header), err.Message)

	width := er.getLineNumberWidth(err.Position.Line + 1)
	indent := strings.Repeat(" ", width)
	gutter := dim("│")

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, gutter)

	line := err.Position.Line
	if line > 0 && line <= len(er.lines) {
		if line > 1 {
			er.writeSourceLine(&b, line-1, width, dim)
		}
		er.writeSourceLine(&b, line, width, color.New(color.Bold).SprintFunc())
		fmt.Fprintf(&b, "%s %s %s\n", indent, gutter, er.createMarker(err.Position.Column, err.Length))
		if line < len(er.lines) && strings.TrimSpace(er.lines[line]) != "" {
			er.writeSourceLine(&b, line+1, width, dim)
		}
	}

	suggestionColor := color.New(color.FgCyan).SprintFunc()
	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&b, "%s %s\n", indent, gutter)
	}
	for i, suggestion := range err.Suggestions {
		if i == 0 {
			fmt.Fprintf(&b, "%s %s: %s\n", indent, suggestionColor("help"), suggestion.Message)
		} else {
			fmt.Fprintf(&b, "%s       %s\n", indent, suggestion.Message)
		}
		if suggestion.Replacement != "" {
			fmt.Fprintf(&b, "%s %s %s\n", indent, suggestionColor("│"), suggestionColor(suggestion.Replacement))
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, gutter, noteColor("note:"), note)
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, gutter, helpColor("help:"), err.HelpText)
	}

	return b.String()
}

func (er *ErrorReporter) writeSourceLine(b *strings.Builder, line, width int, style func(...interface{}) string) {
	fmt.Fprintf(b, "%s %s %s\n",
		style(fmt.Sprintf("%*d", width, line)),
		color.New(color.Faint).Sprint("│"),
		er.lines[line-1])
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()

	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(len(fmt.Sprintf("%d", line)), 3)
}
