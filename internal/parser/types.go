package parser

import "fmt"

type TokenType int

const (
	EOF TokenType = iota

	// Identifiers + literals
	IDENTIFIER
	STRING
	CHAR
	INTEGER
	FLOAT

	// Keywords
	TRUE
	FALSE
	NONE
	NOT
	AND
	OR

	// Operators
	PLUS
	MINUS
	STAR
	STAR_STAR
	SLASH
	PERCENT
	EQUAL
	EQUAL_EQUAL
	BANG_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET

	// Arrows
	ARROW
	DOUBLE_ARROW

	NEWLINE
)

var tokenTypeNames = [...]string{
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	CHAR:          "CHAR",
	INTEGER:       "INTEGER",
	FLOAT:         "FLOAT",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NONE:          "NONE",
	NOT:           "NOT",
	AND:           "AND",
	OR:            "OR",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	STAR_STAR:     "STAR_STAR",
	SLASH:         "SLASH",
	PERCENT:       "PERCENT",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	BANG_EQUAL:    "BANG_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	ARROW:         "ARROW",
	DOUBLE_ARROW:  "DOUBLE_ARROW",
	NEWLINE:       "NEWLINE",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
