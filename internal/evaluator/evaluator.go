package evaluator

import (
	"fmt"

	"mono/internal/ast"
)

const DefaultMaxDepth = 1000

// Evaluator walks syntax trees. The zero value is ready to use with
// DefaultMaxDepth.
type Evaluator struct {
	// MaxDepth bounds recursion; deeper trees fail with StackOverflow.
	MaxDepth int
}

// Evaluate runs node against env with the default recursion limit.
func Evaluate(node ast.Node, env *Environment) (Value, error) {
	return (&Evaluator{}).Evaluate(node, env)
}

// Evaluate runs node against env. Assignments mutate env in place. A Program
// yields the value of its last statement, or None when it is empty.
func (ev *Evaluator) Evaluate(node ast.Node, env *Environment) (Value, error) {
	if env == nil {
		env = NewEnvironment()
	}
	limit := ev.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}

	w := &walker{env: env, maxDepth: limit}
	v, err := w.eval(node)
	if err != nil {
		return nil, err
	}
	return v, nil
}

type walker struct {
	env      *Environment
	depth    int
	maxDepth int
}

func (w *walker) eval(node ast.Node) (Value, error) {
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > w.maxDepth {
		return nil, &RuntimeError{
			Kind:    StackOverflow,
			Message: fmt.Sprintf("evaluation nested deeper than %d levels", w.maxDepth),
			Pos:     node.NodePos(),
			EndPos:  node.NodeEndPos(),
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		var last Value = None{}
		for _, stmt := range n.Statements {
			v, err := w.eval(stmt)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.IntLiteral:
		return Integer(n.Value), nil
	case *ast.FloatLiteral:
		return Float(n.Value), nil
	case *ast.StringLiteral:
		return String(n.Value), nil
	case *ast.CharLiteral:
		return Character(n.Value), nil
	case *ast.BoolLiteral:
		return Boolean(n.Value), nil
	case *ast.NoneLiteral:
		return None{}, nil

	case *ast.IdentExpr:
		v, ok := w.env.Get(n.Name)
		if !ok {
			return nil, undefinedVariable(n)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := w.eval(n.Value)
		if err != nil {
			return nil, err
		}
		w.env.Set(n.Name.Value, v)
		return v, nil

	case *ast.ParenExpr:
		return w.eval(n.Value)

	case *ast.UnaryExpr:
		return w.evalUnary(n)

	case *ast.LogicalExpr:
		return w.evalLogical(n)

	case *ast.BinaryExpr:
		left, err := w.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := w.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return binary(n, left, right)
	}

	return nil, fmt.Errorf("evaluator: unsupported node %T", node)
}

func (w *walker) evalUnary(n *ast.UnaryExpr) (Value, error) {
	v, err := w.eval(n.Value)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpNot:
		if b, ok := v.(Boolean); ok {
			return !b, nil
		}
	case ast.OpSub:
		switch v := v.(type) {
		case Integer:
			neg, ok := negInt(int64(v))
			if !ok {
				return nil, integerOverflow(n, n.Op)
			}
			return Integer(neg), nil
		case Float:
			return -v, nil
		}
	}
	return nil, typeMismatch(n, n.Op, v)
}

// evalLogical only evaluates the right operand when the left one does not
// decide the result.
func (w *walker) evalLogical(n *ast.LogicalExpr) (Value, error) {
	left, err := w.eval(n.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(Boolean)
	if !ok {
		return nil, typeMismatch(n, n.Op, left)
	}

	if (n.Op == ast.OpOr && bool(lb)) || (n.Op == ast.OpAnd && !bool(lb)) {
		return lb, nil
	}

	right, err := w.eval(n.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(Boolean)
	if !ok {
		return nil, typeMismatch(n, n.Op, left, right)
	}
	return rb, nil
}
