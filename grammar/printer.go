package grammar

import (
	"fmt"
	"strings"
)

// Format reparses source and prints it in canonical layout: single spaces
// around binary operators, one statement per line, runs of blank lines
// collapsed to one.
func Format(filename, source string) (string, error) {
	program, err := Parse(filename, source)
	if err != nil {
		return "", err
	}
	return program.String(), nil
}

func (p *Program) String() string {
	var b strings.Builder
	blank := false
	for _, l := range p.Lines {
		if l.Statement == nil {
			blank = b.Len() > 0
			continue
		}
		if blank {
			b.WriteString("\n")
			blank = false
		}
		b.WriteString(l.Statement.String() + "\n")
	}
	return b.String()
}

// Tree renders each statement fully parenthesized, one string per statement.
func (p *Program) Tree() []string {
	var out []string
	for _, l := range p.Lines {
		if l.Statement != nil {
			out = append(out, l.Statement.Tree())
		}
	}
	return out
}

func (s *Statement) String() string {
	if s.Assignment != nil {
		return fmt.Sprintf("%s = %s", s.Assignment.Target, s.Assignment.Value.String())
	}
	return s.Expr.String()
}

func (s *Statement) Tree() string {
	if s.Assignment != nil {
		return fmt.Sprintf("(%s = %s)", s.Assignment.Target, s.Assignment.Value.Tree())
	}
	return s.Expr.Tree()
}

func (o *Or) String() string {
	parts := []string{o.Left.String()}
	for _, r := range o.Right {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " or ")
}

func (o *Or) Tree() string {
	out := o.Left.Tree()
	for _, r := range o.Right {
		out = fmt.Sprintf("(%s or %s)", out, r.Tree())
	}
	return out
}

func (a *And) String() string {
	parts := []string{a.Left.String()}
	for _, r := range a.Right {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " and ")
}

func (a *And) Tree() string {
	out := a.Left.Tree()
	for _, r := range a.Right {
		out = fmt.Sprintf("(%s and %s)", out, r.Tree())
	}
	return out
}

func (n *Not) String() string {
	if n.Negated != nil {
		return "not " + n.Negated.String()
	}
	return n.Expr.String()
}

func (n *Not) Tree() string {
	if n.Negated != nil {
		return fmt.Sprintf("(not %s)", n.Negated.Tree())
	}
	return n.Expr.Tree()
}

func (e *Equality) String() string {
	var b strings.Builder
	b.WriteString(e.Left.String())
	for _, op := range e.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, op.Right.String())
	}
	return b.String()
}

func (e *Equality) Tree() string {
	out := e.Left.Tree()
	for _, op := range e.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Op, op.Right.Tree())
	}
	return out
}

func (r *Relational) String() string {
	var b strings.Builder
	b.WriteString(r.Left.String())
	for _, op := range r.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, op.Right.String())
	}
	return b.String()
}

func (r *Relational) Tree() string {
	out := r.Left.Tree()
	for _, op := range r.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Op, op.Right.Tree())
	}
	return out
}

func (a *Additive) String() string {
	var b strings.Builder
	b.WriteString(a.Left.String())
	for _, op := range a.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, op.Right.String())
	}
	return b.String()
}

func (a *Additive) Tree() string {
	out := a.Left.Tree()
	for _, op := range a.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Op, op.Right.Tree())
	}
	return out
}

func (m *Multiplicative) String() string {
	var b strings.Builder
	b.WriteString(m.Left.String())
	for _, op := range m.Ops {
		fmt.Fprintf(&b, " %s %s", op.Op, op.Right.String())
	}
	return b.String()
}

func (m *Multiplicative) Tree() string {
	out := m.Left.Tree()
	for _, op := range m.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Op, op.Right.Tree())
	}
	return out
}

func (u *Unary) String() string {
	if u.Negated != nil {
		return "-" + u.Negated.String()
	}
	return u.Power.String()
}

func (u *Unary) Tree() string {
	if u.Negated != nil {
		return fmt.Sprintf("(-%s)", u.Negated.Tree())
	}
	return u.Power.Tree()
}

func (p *Power) String() string {
	if p.Exponent != nil {
		return fmt.Sprintf("%s ** %s", p.Base.String(), p.Exponent.String())
	}
	return p.Base.String()
}

func (p *Power) Tree() string {
	if p.Exponent != nil {
		return fmt.Sprintf("(%s ** %s)", p.Base.Tree(), p.Exponent.Tree())
	}
	return p.Base.Tree()
}

func (p *Primary) String() string {
	switch {
	case p.Float != nil:
		return *p.Float
	case p.Int != nil:
		return *p.Int
	case p.Str != nil:
		return *p.Str
	case p.Char != nil:
		return *p.Char
	case p.Bool != nil:
		return *p.Bool
	case p.None:
		return "none"
	case p.Ident != nil:
		return *p.Ident
	case p.Group != nil:
		return "(" + p.Group.String() + ")"
	}
	return ""
}

func (p *Primary) Tree() string {
	if p.Group != nil {
		return "(" + p.Group.Tree() + ")"
	}
	return p.String()
}
