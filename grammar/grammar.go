package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a sequence of lines. A line holds at most one statement.
type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Lines []*Line `@@*`
}

type Line struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Statement *Statement `@@? Newline`
}

// Statement is either a (possibly chained) assignment or an expression.
type Statement struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Assignment *Assignment `  @@`
	Expr       *Or         `| @@`
}

type Assignment struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Target string     `@Ident "="`
	Value  *Statement `@@`
}

type Or struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left  *And   `@@`
	Right []*And `( "or" @@ )*`
}

type And struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left  *Not   `@@`
	Right []*Not `( "and" @@ )*`
}

type Not struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Negated *Not      `  "not" @@`
	Expr    *Equality `| @@`
}

type Equality struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left *Relational   `@@`
	Ops  []*EqualityOp `@@*`
}

type EqualityOp struct {
	Op    string      `@( "==" | "!=" )`
	Right *Relational `@@`
}

type Relational struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left *Additive       `@@`
	Ops  []*RelationalOp `@@*`
}

type RelationalOp struct {
	Op    string    `@( "<=" | ">=" | "<" | ">" )`
	Right *Additive `@@`
}

type Additive struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left *Multiplicative `@@`
	Ops  []*AdditiveOp   `@@*`
}

type AdditiveOp struct {
	Op    string          `@( "+" | "-" )`
	Right *Multiplicative `@@`
}

type Multiplicative struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Left *Unary              `@@`
	Ops  []*MultiplicativeOp `@@*`
}

type MultiplicativeOp struct {
	Op    string `@( "*" | "/" | "%" )`
	Right *Unary `@@`
}

// Unary minus binds looser than "**": -2 ** 2 is -(2 ** 2).
type Unary struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Negated *Unary `  "-" @@`
	Power   *Power `| @@`
}

// Power is right associative through its exponent.
type Power struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Base     *Primary `@@`
	Exponent *Unary   `( "**" @@ )?`
}

type Primary struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Float  *string    `  @Float`
	Int    *string    `| @Int`
	Str    *string    `| @String`
	Char   *string    `| @Char`
	Bool   *string    `| @( "true" | "false" )`
	None   bool       `| @"none"`
	Ident  *string    `| @Ident`
	Group  *Statement `| "(" @@ ")"`
}
