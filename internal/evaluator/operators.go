package evaluator

import (
	"cmp"
	"math"

	"mono/internal/ast"
)

func binary(n *ast.BinaryExpr, left, right Value) (Value, error) {
	switch n.Op {
	case ast.OpEqual, ast.OpNotEqual:
		eq, ok := equal(left, right)
		if !ok {
			return nil, typeMismatch(n, n.Op, left, right)
		}
		if n.Op == ast.OpNotEqual {
			eq = !eq
		}
		return Boolean(eq), nil

	case ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual:
		return compare(n, left, right)

	case ast.OpAdd:
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
		return arithmetic(n, left, right)

	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return arithmetic(n, left, right)
	}

	return nil, typeMismatch(n, n.Op, left, right)
}

func arithmetic(n *ast.BinaryExpr, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Integer:
		switch r := right.(type) {
		case Integer:
			return intArithmetic(n, int64(l), int64(r))
		case Float:
			if n.Op == ast.OpMod {
				break
			}
			return floatArithmetic(n, float64(l), float64(r))
		}
	case Float:
		switch r := right.(type) {
		case Float:
			return floatArithmetic(n, float64(l), float64(r))
		case Integer:
			if n.Op == ast.OpMod {
				break
			}
			return floatArithmetic(n, float64(l), float64(r))
		}
	}
	return nil, typeMismatch(n, n.Op, left, right)
}

func intArithmetic(n *ast.BinaryExpr, a, b int64) (Value, error) {
	var (
		result int64
		ok     = true
	)

	switch n.Op {
	case ast.OpAdd:
		result, ok = addInt(a, b)
	case ast.OpSub:
		result, ok = subInt(a, b)
	case ast.OpMul:
		result, ok = mulInt(a, b)
	case ast.OpDiv:
		if b == 0 {
			return nil, divisionByZero(n, n.Op)
		}
		return Float(float64(a) / float64(b)), nil
	case ast.OpMod:
		if b == 0 {
			return nil, divisionByZero(n, n.Op)
		}
		result = a % b
	case ast.OpPow:
		if b < 0 {
			if a == 0 {
				return nil, divisionByZero(n, n.Op)
			}
			return Float(math.Pow(float64(a), float64(b))), nil
		}
		result, ok = powInt(a, b)
	}

	if !ok {
		return nil, integerOverflow(n, n.Op)
	}
	return Integer(result), nil
}

func floatArithmetic(n *ast.BinaryExpr, a, b float64) (Value, error) {
	switch n.Op {
	case ast.OpAdd:
		return Float(a + b), nil
	case ast.OpSub:
		return Float(a - b), nil
	case ast.OpMul:
		return Float(a * b), nil
	case ast.OpDiv:
		if b == 0 {
			return nil, divisionByZero(n, n.Op)
		}
		return Float(a / b), nil
	case ast.OpMod:
		if b == 0 {
			return nil, divisionByZero(n, n.Op)
		}
		return Float(math.Mod(a, b)), nil
	case ast.OpPow:
		if a == 0 && b < 0 {
			return nil, divisionByZero(n, n.Op)
		}
		return Float(math.Pow(a, b)), nil
	}
	return nil, typeMismatch(n, n.Op, Float(a), Float(b))
}

// equal reports whether two values are equal. ok is false when the kinds
// cannot be compared.
func equal(left, right Value) (eq bool, ok bool) {
	if order, ordered, numeric := numericCompare(left, right); numeric {
		return ordered && order == 0, true
	}

	if left.Kind() != right.Kind() {
		return false, false
	}
	switch l := left.(type) {
	case Boolean:
		return l == right.(Boolean), true
	case String:
		return l == right.(String), true
	case Character:
		return l == right.(Character), true
	case None:
		return true, true
	}
	return false, false
}

func compare(n *ast.BinaryExpr, left, right Value) (Value, error) {
	order, ordered, numeric := numericCompare(left, right)
	if !numeric {
		return nil, typeMismatch(n, n.Op, left, right)
	}
	// NaN compares false against everything
	if !ordered {
		return Boolean(false), nil
	}

	switch n.Op {
	case ast.OpLess:
		return Boolean(order < 0), nil
	case ast.OpLessEqual:
		return Boolean(order <= 0), nil
	case ast.OpGreater:
		return Boolean(order > 0), nil
	default:
		return Boolean(order >= 0), nil
	}
}

// numericCompare orders two numbers as -1, 0 or +1. Integer against Float
// is exact, without rounding the integer. ordered is false when a NaN is
// involved; numeric is false unless both sides are numbers.
func numericCompare(left, right Value) (order int, ordered, numeric bool) {
	switch l := left.(type) {
	case Integer:
		switch r := right.(type) {
		case Integer:
			return cmp.Compare(l, r), true, true
		case Float:
			order, ordered = compareIntFloat(int64(l), float64(r))
			return order, ordered, true
		}
	case Float:
		switch r := right.(type) {
		case Integer:
			order, ordered = compareIntFloat(int64(r), float64(l))
			return -order, ordered, true
		case Float:
			if math.IsNaN(float64(l)) || math.IsNaN(float64(r)) {
				return 0, false, true
			}
			return cmp.Compare(l, r), true, true
		}
	}
	return 0, false, false
}

func compareIntFloat(i int64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= 1<<63:
		return -1, true
	case f < -(1 << 63):
		return 1, true
	}

	whole := math.Trunc(f)
	if order := cmp.Compare(i, int64(whole)); order != 0 {
		return order, true
	}
	// same integral part; the fraction decides
	return cmp.Compare(0, f-whole), true
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (a^s)&(b^s) >= 0
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (a^b)&(a^d) >= 0
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

func negInt(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	return -a, true
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}
