package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree one node per line, children indented by two spaces,
// each line ending with the node's source span.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	span := fmt.Sprintf("[%d:%d-%d:%d]",
		node.NodePos().Line, node.NodePos().Column,
		node.NodeEndPos().Line, node.NodeEndPos().Column)

	switch n := node.(type) {
	case *Program:
		fmt.Fprintf(b, "%s%s %s\n", indent, n.NodeType(), span)
		for _, stmt := range n.Statements {
			dump(b, stmt, depth+1)
		}
	case *BinaryExpr:
		fmt.Fprintf(b, "%s%s %q %s\n", indent, n.NodeType(), n.Op, span)
		dump(b, n.Left, depth+1)
		dump(b, n.Right, depth+1)
	case *LogicalExpr:
		fmt.Fprintf(b, "%s%s %q %s\n", indent, n.NodeType(), n.Op, span)
		dump(b, n.Left, depth+1)
		dump(b, n.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "%s%s %q %s\n", indent, n.NodeType(), n.Op, span)
		dump(b, n.Value, depth+1)
	case *AssignExpr:
		fmt.Fprintf(b, "%s%s %s %s\n", indent, n.NodeType(), n.Name.Value, span)
		dump(b, n.Value, depth+1)
	case *ParenExpr:
		fmt.Fprintf(b, "%s%s %s\n", indent, n.NodeType(), span)
		dump(b, n.Value, depth+1)
	default:
		fmt.Fprintf(b, "%s%s %s %s\n", indent, node.NodeType(), node.String(), span)
	}
}

// ToMap converts the tree into nested maps suitable for YAML or JSON
// encoding.
func ToMap(node Node) map[string]any {
	m := map[string]any{
		"type": node.NodeType().String(),
		"pos":  fmt.Sprintf("%d:%d", node.NodePos().Line, node.NodePos().Column),
	}

	switch n := node.(type) {
	case *Program:
		stmts := make([]any, len(n.Statements))
		for i, stmt := range n.Statements {
			stmts[i] = ToMap(stmt)
		}
		m["statements"] = stmts
	case *IntLiteral:
		m["value"] = n.Value
	case *FloatLiteral:
		m["value"] = n.Value
	case *StringLiteral:
		m["value"] = n.Value
	case *CharLiteral:
		m["value"] = string(n.Value)
	case *BoolLiteral:
		m["value"] = n.Value
	case *NoneLiteral:
	case *IdentExpr:
		m["name"] = n.Name
	case *BinaryExpr:
		m["op"] = n.Op
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *LogicalExpr:
		m["op"] = n.Op
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *UnaryExpr:
		m["op"] = n.Op
		m["operand"] = ToMap(n.Value)
	case *AssignExpr:
		m["name"] = n.Name.Value
		m["value"] = ToMap(n.Value)
	case *ParenExpr:
		m["value"] = ToMap(n.Value)
	}

	return m
}
