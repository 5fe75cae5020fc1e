package ast

import "fmt"

type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type NodeType int

const (
	PROGRAM NodeType = iota
	INT_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	CHAR_LITERAL
	BOOL_LITERAL
	NONE_LITERAL
	IDENT_EXPR
	BINARY_EXPR
	UNARY_EXPR
	LOGICAL_EXPR
	ASSIGN_EXPR
	PAREN_EXPR
)

var nodeTypeNames = [...]string{
	PROGRAM:        "Program",
	INT_LITERAL:    "IntLiteral",
	FLOAT_LITERAL:  "FloatLiteral",
	STRING_LITERAL: "StringLiteral",
	CHAR_LITERAL:   "CharLiteral",
	BOOL_LITERAL:   "BoolLiteral",
	NONE_LITERAL:   "NoneLiteral",
	IDENT_EXPR:     "IdentExpr",
	BINARY_EXPR:    "BinaryExpr",
	UNARY_EXPR:     "UnaryExpr",
	LOGICAL_EXPR:   "LogicalExpr",
	ASSIGN_EXPR:    "AssignExpr",
	PAREN_EXPR:     "ParenExpr",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (l *IntLiteral) NodePos() Position    { return l.Pos }
func (l *IntLiteral) NodeEndPos() Position { return l.EndPos }
func (*IntLiteral) NodeType() NodeType     { return INT_LITERAL }

func (l *FloatLiteral) NodePos() Position    { return l.Pos }
func (l *FloatLiteral) NodeEndPos() Position { return l.EndPos }
func (*FloatLiteral) NodeType() NodeType     { return FLOAT_LITERAL }

func (l *StringLiteral) NodePos() Position    { return l.Pos }
func (l *StringLiteral) NodeEndPos() Position { return l.EndPos }
func (*StringLiteral) NodeType() NodeType     { return STRING_LITERAL }

func (l *CharLiteral) NodePos() Position    { return l.Pos }
func (l *CharLiteral) NodeEndPos() Position { return l.EndPos }
func (*CharLiteral) NodeType() NodeType     { return CHAR_LITERAL }

func (l *BoolLiteral) NodePos() Position    { return l.Pos }
func (l *BoolLiteral) NodeEndPos() Position { return l.EndPos }
func (*BoolLiteral) NodeType() NodeType     { return BOOL_LITERAL }

func (l *NoneLiteral) NodePos() Position    { return l.Pos }
func (l *NoneLiteral) NodeEndPos() Position { return l.EndPos }
func (*NoneLiteral) NodeType() NodeType     { return NONE_LITERAL }

func (i *IdentExpr) NodePos() Position    { return i.Pos }
func (i *IdentExpr) NodeEndPos() Position { return i.EndPos }
func (*IdentExpr) NodeType() NodeType     { return IDENT_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (l *LogicalExpr) NodePos() Position    { return l.Pos }
func (l *LogicalExpr) NodeEndPos() Position { return l.EndPos }
func (*LogicalExpr) NodeType() NodeType     { return LOGICAL_EXPR }

func (a *AssignExpr) NodePos() Position    { return a.Pos }
func (a *AssignExpr) NodeEndPos() Position { return a.EndPos }
func (*AssignExpr) NodeType() NodeType     { return ASSIGN_EXPR }

func (p *ParenExpr) NodePos() Position    { return p.Pos }
func (p *ParenExpr) NodeEndPos() Position { return p.EndPos }
func (*ParenExpr) NodeType() NodeType     { return PAREN_EXPR }
