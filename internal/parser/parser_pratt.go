package parser

import (
	"fmt"

	"mono/internal/ast"
)

const (
	precLowest = 1
	precNot    = 3
	precPower  = 8
)

var binaryPrecedence = map[TokenType]int{
	OR:  1,
	AND: 2,
	// 3 is prefix "not"
	EQUAL_EQUAL: 4, BANG_EQUAL: 4,
	GREATER: 5, GREATER_EQUAL: 5, LESS: 5, LESS_EQUAL: 5,
	PLUS: 6, MINUS: 6,
	STAR: 7, SLASH: 7, PERCENT: 7,
	STAR_STAR: precPower,
}

var rightAssociative = map[TokenType]bool{
	STAR_STAR: true,
}

// Tokens that can begin an expression, reported in parse errors.
var expressionStart = []TokenType{
	INTEGER, FLOAT, STRING, CHAR, TRUE, FALSE, NONE, IDENTIFIER, LEFT_PAREN, MINUS, NOT,
}

func (p *Parser) parsePrattExpr(minPrec int) (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	expr, err := p.parsePrefixExpr(minPrec)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		next := prec + 1
		if rightAssociative[tok.Type] {
			next = prec
		}
		right, err := p.parsePrattExpr(next)
		if err != nil {
			return nil, err
		}

		expr = p.makeBinary(tok, expr, right)
	}

	return expr, nil
}

func (p *Parser) makeBinary(op Token, left, right ast.Expr) ast.Expr {
	if op.Type == AND || op.Type == OR {
		return &ast.LogicalExpr{
			Pos:    left.NodePos(),
			EndPos: right.NodeEndPos(),
			Op:     op.Lexeme,
			OpPos:  p.makePos(op),
			Left:   left,
			Right:  right,
		}
	}
	return &ast.BinaryExpr{
		Pos:    left.NodePos(),
		EndPos: right.NodeEndPos(),
		Op:     op.Lexeme,
		OpPos:  p.makePos(op),
		Left:   left,
		Right:  right,
	}
}

func (p *Parser) parsePrefixExpr(minPrec int) (ast.Expr, error) {
	if p.check(NOT) {
		op := p.peek()
		if minPrec > precNot {
			return nil, p.errorAt(UnexpectedToken, op, "'not' must be parenthesized here", expressionStart[:len(expressionStart)-1]...)
		}
		p.advance()
		value, err := p.parsePrattExpr(precNot)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Pos:    p.makePos(op),
			EndPos: value.NodeEndPos(),
			Op:     ast.OpNot,
			Value:  value,
		}, nil
	}

	if p.match(MINUS) {
		op := p.previous()
		value, err := p.parsePrattExpr(precPower)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Pos:    p.makePos(op),
			EndPos: value.NodeEndPos(),
			Op:     ast.OpSub,
			Value:  value,
		}, nil
	}

	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case INTEGER:
		p.advance()
		v, _ := tok.Literal.(int64)
		return &ast.IntLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: v, Raw: tok.Lexeme}, nil
	case FLOAT:
		p.advance()
		v, _ := tok.Literal.(float64)
		return &ast.FloatLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: v, Raw: tok.Lexeme}, nil
	case STRING:
		p.advance()
		v, _ := tok.Literal.(string)
		return &ast.StringLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: v, Raw: tok.Lexeme}, nil
	case CHAR:
		p.advance()
		v, _ := tok.Literal.(rune)
		return &ast.CharLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: v, Raw: tok.Lexeme}, nil
	case TRUE, FALSE:
		p.advance()
		return &ast.BoolLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Type == TRUE}, nil
	case NONE:
		p.advance()
		return &ast.NoneLiteral{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok)}, nil
	case IDENTIFIER:
		p.advance()
		return &ast.IdentExpr{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme}, nil
	case LEFT_PAREN:
		return p.parseGroup()
	case RIGHT_PAREN:
		if p.groups == 0 {
			return nil, p.errorAt(UnmatchedBracket, tok, "unmatched closing ')'")
		}
	}

	return nil, p.errorAt(UnexpectedToken, tok, fmt.Sprintf("expected expression, found %s", describe(tok)), expressionStart...)
}

func (p *Parser) parseGroup() (ast.Expr, error) {
	l := p.advance()
	p.groups++

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.check(RIGHT_PAREN) {
		tok := p.peek()
		return nil, p.errorAt(UnmatchedBracket, tok,
			fmt.Sprintf("expected ')' to close '(' at %s, found %s", l.Position, describe(tok)), RIGHT_PAREN)
	}
	r := p.advance()
	p.groups--

	return &ast.ParenExpr{
		Pos:    p.makePos(l),
		EndPos: p.makeEndPos(r),
		Value:  value,
	}, nil
}
