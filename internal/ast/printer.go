package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for i, stmt := range p.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}
	return b.String()
}

func (l *IntLiteral) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	return strconv.FormatInt(l.Value, 10)
}

func (l *FloatLiteral) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	return FormatFloat(l.Value)
}

func (l *StringLiteral) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	return Quote(l.Value, '"')
}

func (l *CharLiteral) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	return Quote(string(l.Value), '\'')
}

func (l *BoolLiteral) String() string {
	return strconv.FormatBool(l.Value)
}

func (*NoneLiteral) String() string {
	return "none"
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (u *UnaryExpr) String() string {
	if u.Op == OpNot {
		return fmt.Sprintf("(not %s)", u.Value.String())
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Value.String())
}

func (l *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left.String(), l.Op, l.Right.String())
}

func (a *AssignExpr) String() string {
	return fmt.Sprintf("(%s = %s)", a.Name.Value, a.Value.String())
}

func (p *ParenExpr) String() string {
	return fmt.Sprintf("(%s)", p.Value.String())
}

// FormatFloat renders f so that it reads back as a float literal.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Quote wraps s in the given quote character using the escapes the scanner
// understands.
func Quote(s string, quote rune) string {
	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
