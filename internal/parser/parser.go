package parser

import (
	"fmt"

	"mono/internal/ast"
)

const DefaultMaxDepth = 200

type Parser struct {
	filename string
	tokens   []Token
	current  int
	groups   int // open parentheses; newlines inside them are insignificant
	depth    int
	maxDepth int
}

type Option func(*Parser)

// WithMaxDepth bounds expression nesting; deeper input fails with TooDeep.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

func NewParser(filename string, tokens []Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Position
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: EOF, Position: pos})
	}

	p := &Parser{
		filename: filename,
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses exactly one statement. Anything other than newlines after it
// is an error.
func Parse(tokens []Token, opts ...Option) (ast.Expr, error) {
	p := NewParser("", tokens, opts...)
	if p.Done() {
		return nil, p.errorAt(UnexpectedToken, p.peek(), "expected expression, found end of input", expressionStart...)
	}

	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}

	if !p.Done() {
		tok := p.peek()
		return nil, p.errorAt(UnexpectedToken, tok, fmt.Sprintf("unexpected %s after statement", describe(tok)), NEWLINE, EOF)
	}
	return stmt, nil
}

// ParseProgram parses every newline-separated statement in tokens.
func ParseProgram(filename string, tokens []Token, opts ...Option) (*ast.Program, error) {
	p := NewParser(filename, tokens, opts...)
	program := &ast.Program{Pos: p.makePos(p.tokens[0])}

	for !p.Done() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	program.EndPos = p.makePos(p.peek())
	return program, nil
}

// Done skips blank lines and reports whether only EOF remains.
func (p *Parser) Done() bool {
	p.skipNewlines()
	return p.isAtEnd()
}

// ParseStatement parses one statement and consumes its terminating newline.
func (p *Parser) ParseStatement() (ast.Expr, error) {
	p.skipNewlines()
	p.depth = 0
	p.groups = 0

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	switch tok.Type {
	case NEWLINE:
		p.advance()
		return expr, nil
	case EOF:
		return expr, nil
	case RIGHT_PAREN, RIGHT_BRACE, RIGHT_BRACKET:
		return nil, p.errorAt(UnmatchedBracket, tok, fmt.Sprintf("unmatched closing %s", describe(tok)))
	}
	return nil, p.errorAt(UnexpectedToken, tok, fmt.Sprintf("unexpected %s, expected end of statement", describe(tok)), NEWLINE, EOF)
}

// parseExpr handles assignment, the loosest-binding construct.
func (p *Parser) parseExpr() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parsePrattExpr(precLowest)
	if err != nil {
		return nil, err
	}

	if !p.check(EQUAL) {
		return left, nil
	}
	eq := p.advance()

	target, ok := left.(*ast.IdentExpr)
	if !ok {
		return nil, p.errorAt(InvalidAssignmentTarget, eq, fmt.Sprintf("cannot assign to %s", left.String()))
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.AssignExpr{
		Pos:    target.Pos,
		EndPos: value.NodeEndPos(),
		Name: ast.Ident{
			Pos:    target.Pos,
			EndPos: target.EndPos,
			Value:  target.Name,
		},
		Value: value,
	}, nil
}
