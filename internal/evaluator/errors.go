package evaluator

import (
	"errors"
	"fmt"

	"mono/internal/ast"
)

type RuntimeErrorKind int

const (
	UndefinedVariable RuntimeErrorKind = iota
	TypeMismatch
	DivisionByZero
	StackOverflow
	IntegerOverflow
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrIntegerOverflow   = errors.New("integer overflow")
)

func (k RuntimeErrorKind) sentinel() error {
	switch k {
	case UndefinedVariable:
		return ErrUndefinedVariable
	case TypeMismatch:
		return ErrTypeMismatch
	case DivisionByZero:
		return ErrDivisionByZero
	case StackOverflow:
		return ErrStackOverflow
	case IntegerOverflow:
		return ErrIntegerOverflow
	}
	return nil
}

func (k RuntimeErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("RuntimeErrorKind(%d)", int(k))
}

type RuntimeError struct {
	Kind     RuntimeErrorKind
	Message  string
	Name     string // UndefinedVariable
	Op       string // TypeMismatch, DivisionByZero, IntegerOverflow
	Operands []Kind // operand kinds that were rejected
	Pos      ast.Position
	EndPos   ast.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind.sentinel()
}

func undefinedVariable(n *ast.IdentExpr) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedVariable,
		Message: fmt.Sprintf("undefined variable '%s'", n.Name),
		Name:    n.Name,
		Pos:     n.Pos,
		EndPos:  n.EndPos,
	}
}

func typeMismatch(node ast.Node, op string, operands ...Value) *RuntimeError {
	kinds := make([]Kind, len(operands))
	for i, v := range operands {
		kinds[i] = v.Kind()
	}

	var msg string
	switch len(kinds) {
	case 1:
		msg = fmt.Sprintf("unsupported operand type for %s: %s", op, kinds[0])
	default:
		msg = fmt.Sprintf("unsupported operand types for %s: %s and %s", op, kinds[0], kinds[1])
	}

	return &RuntimeError{
		Kind:     TypeMismatch,
		Message:  msg,
		Op:       op,
		Operands: kinds,
		Pos:      node.NodePos(),
		EndPos:   node.NodeEndPos(),
	}
}

func divisionByZero(node ast.Node, op string) *RuntimeError {
	return &RuntimeError{
		Kind:    DivisionByZero,
		Message: fmt.Sprintf("division by zero in '%s'", op),
		Op:      op,
		Pos:     node.NodePos(),
		EndPos:  node.NodeEndPos(),
	}
}

func integerOverflow(node ast.Node, op string) *RuntimeError {
	return &RuntimeError{
		Kind:    IntegerOverflow,
		Message: fmt.Sprintf("integer overflow in '%s'", op),
		Op:      op,
		Pos:     node.NodePos(),
		EndPos:  node.NodeEndPos(),
	}
}
