package ast

// Program is the ordered list of top-level statements of a source file.
type Program struct {
	Pos        Position
	EndPos     Position
	Statements []Expr
}

type Expr interface {
	Node
	isExpr()
}

// Operators as they appear in source.
const (
	OpAdd          = "+"
	OpSub          = "-"
	OpMul          = "*"
	OpDiv          = "/"
	OpMod          = "%"
	OpPow          = "**"
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpAnd          = "and"
	OpOr           = "or"
	OpNot          = "not"
)

type IntLiteral struct {
	Pos    Position
	EndPos Position
	Value  int64
	Raw    string
}

type FloatLiteral struct {
	Pos    Position
	EndPos Position
	Value  float64
	Raw    string
}

// StringLiteral holds the decoded contents; Raw keeps the quoted source.
type StringLiteral struct {
	Pos    Position
	EndPos Position
	Value  string
	Raw    string
}

type CharLiteral struct {
	Pos    Position
	EndPos Position
	Value  rune
	Raw    string
}

type BoolLiteral struct {
	Pos    Position
	EndPos Position
	Value  bool
}

type NoneLiteral struct {
	Pos    Position
	EndPos Position
}

type IdentExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

// BinaryExpr covers arithmetic and comparison operators.
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	OpPos  Position
	Left   Expr
	Right  Expr
}

// UnaryExpr is either numeric negation ("-") or boolean "not".
type UnaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Value  Expr
}

// LogicalExpr is "and" / "or". The right side is only evaluated when the
// left side does not decide the result.
type LogicalExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	OpPos  Position
	Left   Expr
	Right  Expr
}

type AssignExpr struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

type ParenExpr struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// Ident represents a name with its source span.
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

func (*IntLiteral) isExpr() {}

func (*FloatLiteral) isExpr() {}

func (*StringLiteral) isExpr() {}

func (*CharLiteral) isExpr() {}

func (*BoolLiteral) isExpr() {}

func (*NoneLiteral) isExpr() {}

func (*IdentExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*LogicalExpr) isExpr() {}

func (*AssignExpr) isExpr() {}

func (*ParenExpr) isExpr() {}
