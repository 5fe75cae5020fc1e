package parser

import (
	"fmt"
	"unicode/utf8"

	"mono/internal/ast"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// peek returns the current token. Inside parentheses newlines are skipped.
func (p *Parser) peek() Token {
	if p.groups > 0 {
		for p.tokens[p.current].Type == NEWLINE {
			p.current++
		}
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) skipNewlines() {
	for p.tokens[p.current].Type == NEWLINE {
		p.current++
	}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(TooDeep, p.peek(), fmt.Sprintf("expression nested deeper than %d levels", p.maxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorAt(kind ParseErrorKind, tok Token, message string, expected ...TokenType) *ParseError {
	return &ParseError{
		Kind:     kind,
		Message:  message,
		Position: tok.Position,
		Token:    tok,
		Expected: expected,
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "end of line"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + utf8.RuneCountInString(tok.Lexeme),
	}
}
