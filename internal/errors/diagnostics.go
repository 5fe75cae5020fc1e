package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mono/internal/ast"
	"mono/internal/evaluator"
	"mono/internal/parser"
)

// DiagnosticBuilder provides a fluent interface for assembling a
// CompilerError.
type DiagnosticBuilder struct {
	err CompilerError
}

func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// FromError converts a lexical, parse or runtime error into a diagnostic.
// names lists the variables currently bound, for suggestions. Errors of any
// other type become ErrorInternal diagnostics at 1:1.
func FromError(err error, names []string) CompilerError {
	var (
		scanErr    *parser.ScanError
		parseErr   *parser.ParseError
		runtimeErr *evaluator.RuntimeError
	)

	switch {
	case stderrors.As(err, &scanErr):
		return fromScanError(scanErr)
	case stderrors.As(err, &parseErr):
		return fromParseError(parseErr)
	case stderrors.As(err, &runtimeErr):
		return fromRuntimeError(runtimeErr, names)
	}

	return NewDiagnostic(ErrorInternal, err.Error(), ast.Position{Line: 1, Column: 1}).Build()
}

func toASTPos(p parser.Position) ast.Position {
	return ast.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func fromScanError(e *parser.ScanError) CompilerError {
	pos := toASTPos(e.Position)
	length := max(e.Length, 1)

	switch e.Kind {
	case parser.UnexpectedCharacter:
		b := NewDiagnostic(ErrorUnexpectedCharacter, e.Message, pos).WithLength(length)
		if e.Char == '!' {
			b = b.WithSuggestion("use 'not' for boolean negation, or '!=' for inequality")
		}
		return b.Build()
	case parser.UnterminatedString:
		return NewDiagnostic(ErrorUnterminatedString, e.Message, pos).
			WithLength(length).
			WithSuggestion("add a closing '\"' before the end of the line").
			Build()
	case parser.InvalidCharLiteral:
		return NewDiagnostic(ErrorInvalidCharLiteral, e.Message, pos).
			WithLength(length).
			WithNote("use double quotes for strings").
			Build()
	case parser.InvalidNumber:
		return NewDiagnostic(ErrorInvalidNumber, e.Message, pos).
			WithLength(length).
			WithHelp("integers are 64-bit signed; floats need digits on both sides of '.'").
			Build()
	case parser.InvalidEscape:
		return NewDiagnostic(ErrorInvalidEscape, e.Message, pos).
			WithLength(length).
			WithHelp(`supported escapes are \n \t \r \0 \\ \" \'`).
			Build()
	}
	return NewDiagnostic(ErrorInternal, e.Message, pos).WithLength(length).Build()
}

func fromParseError(e *parser.ParseError) CompilerError {
	pos := toASTPos(e.Position)
	length := max(utf8.RuneCountInString(e.Token.Lexeme), 1)

	var b *DiagnosticBuilder
	switch e.Kind {
	case parser.UnexpectedToken:
		b = NewDiagnostic(ErrorUnexpectedToken, e.Message, pos)
		if len(e.Expected) > 0 && len(e.Expected) <= 3 {
			b = b.WithNote("expected " + joinTokenTypes(e.Expected))
		}
	case parser.UnmatchedBracket:
		b = NewDiagnostic(ErrorUnmatchedBracket, e.Message, pos)
		if e.Token.Type == parser.EOF || e.Token.Type == parser.NEWLINE {
			b = b.WithSuggestion("add the missing ')'")
		}
	case parser.InvalidAssignmentTarget:
		b = NewDiagnostic(ErrorInvalidAssignmentTarget, e.Message, pos).
			WithReplacement("use '==' to compare values", "==", pos, 1).
			WithNote("only a plain variable name can appear left of '='")
	case parser.TooDeep:
		b = NewDiagnostic(ErrorTooDeep, e.Message, pos).
			WithHelp("split the expression using intermediate variables")
	default:
		b = NewDiagnostic(ErrorInternal, e.Message, pos)
	}
	return b.WithLength(length).Build()
}

func fromRuntimeError(e *evaluator.RuntimeError, names []string) CompilerError {
	length := 1
	if e.EndPos.Line == e.Pos.Line && e.EndPos.Column > e.Pos.Column {
		length = e.EndPos.Column - e.Pos.Column
	}

	switch e.Kind {
	case evaluator.UndefinedVariable:
		return UndefinedVariable(e.Name, e.Pos, findSimilarNames(e.Name, names))
	case evaluator.TypeMismatch:
		b := NewDiagnostic(ErrorTypeMismatch, e.Message, e.Pos).WithLength(length)
		if e.Op == ast.OpAdd && len(e.Operands) == 2 &&
			(e.Operands[0] == evaluator.KindString) != (e.Operands[1] == evaluator.KindString) {
			b = b.WithNote("strings can only be added to strings")
		}
		if e.Op == ast.OpMod && len(e.Operands) == 2 {
			b = b.WithNote("'%' needs two integers or two floats")
		}
		return b.Build()
	case evaluator.DivisionByZero:
		return NewDiagnostic(ErrorDivisionByZero, e.Message, e.Pos).WithLength(length).Build()
	case evaluator.StackOverflow:
		return NewDiagnostic(ErrorStackOverflow, e.Message, e.Pos).WithLength(length).Build()
	case evaluator.IntegerOverflow:
		return NewDiagnostic(ErrorIntegerOverflow, e.Message, e.Pos).
			WithLength(length).
			WithSuggestion("use a float operand to get an approximate result").
			Build()
	}
	return NewDiagnostic(ErrorInternal, e.Message, e.Pos).WithLength(length).Build()
}

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewDiagnostic(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	switch len(similarNames) {
	case 0:
		builder = builder.WithSuggestion(fmt.Sprintf("assign it first, e.g. %s = 0", name))
	case 1:
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", similarNames[0]), similarNames[0], pos, len(name))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similarNames, "', '")))
	}

	return builder.Build()
}

func joinTokenTypes(types []parser.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// two rolling rows of the edit-distance matrix
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
