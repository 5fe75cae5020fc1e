package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ScanErrorKind classifies lexical failures.
type ScanErrorKind int

const (
	UnexpectedCharacter ScanErrorKind = iota
	UnterminatedString
	InvalidCharLiteral
	InvalidNumber
	InvalidEscape
)

var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrInvalidCharLiteral  = errors.New("invalid character literal")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrInvalidEscape       = errors.New("invalid escape sequence")
)

func (k ScanErrorKind) sentinel() error {
	switch k {
	case UnexpectedCharacter:
		return ErrUnexpectedCharacter
	case UnterminatedString:
		return ErrUnterminatedString
	case InvalidCharLiteral:
		return ErrInvalidCharLiteral
	case InvalidNumber:
		return ErrInvalidNumber
	case InvalidEscape:
		return ErrInvalidEscape
	}
	return nil
}

func (k ScanErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ScanErrorKind(%d)", int(k))
}

type ScanError struct {
	Kind     ScanErrorKind
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
	Char     rune     // offending character for UnexpectedCharacter
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Kind.sentinel()
}

// ParseErrorKind classifies grammar failures.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnmatchedBracket
	InvalidAssignmentTarget
	TooDeep
)

var (
	ErrUnexpectedToken         = errors.New("unexpected token")
	ErrUnmatchedBracket        = errors.New("unmatched bracket")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrTooDeep                 = errors.New("expression nested too deeply")
)

func (k ParseErrorKind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnmatchedBracket:
		return ErrUnmatchedBracket
	case InvalidAssignmentTarget:
		return ErrInvalidAssignmentTarget
	case TooDeep:
		return ErrTooDeep
	}
	return nil
}

func (k ParseErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

type ParseError struct {
	Kind     ParseErrorKind
	Message  string
	Position Position
	Token    Token       // offending token
	Expected []TokenType // what would have been accepted, if known
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Position, e.Message)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = t.String()
		}
		msg += fmt.Sprintf(" (expected %s)", strings.Join(names, ", "))
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
