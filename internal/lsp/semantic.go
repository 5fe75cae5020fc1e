package lsp

import (
	"mono/internal/ast"
	"unicode/utf8"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

func collectSemanticTokens(program *ast.Program, lines lineIndex) []SemanticToken {
	var tokens []SemanticToken
	if program == nil {
		return tokens
	}

	walk(program, func(n ast.Node) {
		switch v := n.(type) {
		case *ast.IntLiteral, *ast.FloatLiteral:
			tokens = append(tokens, makeToken(lines, n.NodePos(), n.NodeEndPos(), "number", 0)...)
		case *ast.StringLiteral, *ast.CharLiteral:
			tokens = append(tokens, makeToken(lines, n.NodePos(), n.NodeEndPos(), "string", 0)...)
		case *ast.BoolLiteral, *ast.NoneLiteral:
			tokens = append(tokens, makeToken(lines, n.NodePos(), n.NodeEndPos(), "keyword", 0)...)
		case *ast.IdentExpr:
			tokens = append(tokens, makeToken(lines, v.Pos, v.EndPos, "variable", 0)...)
		case *ast.AssignExpr:
			tokens = append(tokens, makeToken(lines, v.Name.Pos, v.Name.EndPos, "variable", declaration)...)
		case *ast.BinaryExpr:
			tokens = append(tokens, makeOpToken(lines, v.OpPos, v.Op, "operator")...)
		case *ast.LogicalExpr:
			tokens = append(tokens, makeOpToken(lines, v.OpPos, v.Op, "keyword")...)
		case *ast.UnaryExpr:
			kind := "operator"
			if v.Op == ast.OpNot {
				kind = "keyword"
			}
			tokens = append(tokens, makeOpToken(lines, v.Pos, v.Op, kind)...)
		}
	})

	return tokens
}

var declaration = 1 << indexOf("declaration", SemanticTokenModifiers)

func makeOpToken(lines lineIndex, pos ast.Position, op, tokenType string) []SemanticToken {
	end := pos
	end.Column += utf8.RuneCountInString(op)
	return makeToken(lines, pos, end, tokenType, 0)
}

func makeToken(lines lineIndex, pos, endPos ast.Position, tokenType string, modifiers int) []SemanticToken {
	if pos.Line != endPos.Line {
		return nil
	}
	start := lines.toLSP(pos.Line, pos.Column)
	end := lines.toLSP(endPos.Line, endPos.Column)
	if end.Character <= start.Character {
		return nil
	}

	return []SemanticToken{{
		Line:           start.Line,
		StartChar:      start.Character,
		Length:         end.Character - start.Character,
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}}
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
