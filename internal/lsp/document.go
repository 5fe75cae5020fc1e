package lsp

import (
	"mono/internal/ast"
	"mono/internal/config"
	"mono/internal/evaluator"
	"mono/internal/parser"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an analysed snapshot of an open file. The program is run in a
// fresh environment so hover and completion can show assigned values.
type Document struct {
	URI         protocol.DocumentUri
	Text        string
	Program     *ast.Program
	Env         *evaluator.Environment
	Diagnostics []protocol.Diagnostic

	lines lineIndex
}

func NewDocument(uri protocol.DocumentUri, text string, limits config.LimitsConfig) *Document {
	doc := &Document{
		URI:   uri,
		Text:  text,
		Env:   evaluator.NewEnvironment(),
		lines: newLineIndex(text),
	}

	program, err := parser.ParseSource(uri, text, parser.WithMaxDepth(limits.MaxParseDepth))
	if err != nil {
		doc.Diagnostics = ConvertError(err, nil, doc.lines)
		return doc
	}
	doc.Program = program

	ev := &evaluator.Evaluator{MaxDepth: limits.MaxEvalDepth}
	if _, err := ev.Evaluate(program, doc.Env); err != nil {
		doc.Diagnostics = ConvertError(err, doc.Env.Names(), doc.lines)
	}
	return doc
}

// Names lists every variable the document binds or assigns, sorted.
func (d *Document) Names() []string {
	names := d.Env.Names()
	if d.Program != nil {
		walk(d.Program, func(n ast.Node) {
			if a, ok := n.(*ast.AssignExpr); ok {
				names = append(names, a.Name.Value)
			}
		})
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// IdentAt returns the variable name under pos, if any.
func (d *Document) IdentAt(pos protocol.Position) (string, protocol.Range, bool) {
	if d.Program == nil {
		return "", protocol.Range{}, false
	}
	line, column := d.lines.fromLSP(pos)

	var (
		name       string
		start, end ast.Position
		found      bool
	)
	walk(d.Program, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.IdentExpr:
			if covers(n.Pos, n.EndPos, line, column) {
				name, start, end, found = n.Name, n.Pos, n.EndPos, true
			}
		case *ast.AssignExpr:
			if covers(n.Name.Pos, n.Name.EndPos, line, column) {
				name, start, end, found = n.Name.Value, n.Name.Pos, n.Name.EndPos, true
			}
		}
	})
	if !found {
		return "", protocol.Range{}, false
	}
	return name, protocol.Range{
		Start: d.lines.toLSP(start.Line, start.Column),
		End:   d.lines.toLSP(end.Line, end.Column),
	}, true
}

func covers(start, end ast.Position, line, column int) bool {
	return start.Line == line && column >= start.Column && column < end.Column
}

// walk visits node and its children in source order.
func walk(node ast.Node, visit func(ast.Node)) {
	if node == nil {
		return
	}
	visit(node)
	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Statements {
			walk(stmt, visit)
		}
	case *ast.BinaryExpr:
		walk(n.Left, visit)
		walk(n.Right, visit)
	case *ast.LogicalExpr:
		walk(n.Left, visit)
		walk(n.Right, visit)
	case *ast.UnaryExpr:
		walk(n.Value, visit)
	case *ast.AssignExpr:
		walk(n.Value, visit)
	case *ast.ParenExpr:
		walk(n.Value, visit)
	}
}

// lineIndex maps between 1-based rune columns and the UTF-16 offsets LSP
// clients use.
type lineIndex []string

func newLineIndex(text string) lineIndex {
	return strings.Split(text, "\n")
}

func (li lineIndex) toLSP(line, column int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}
	pos := protocol.Position{Line: uint32(line - 1)}
	if line > len(li) {
		return pos
	}

	units := 0
	col := 1
	for _, r := range li[line-1] {
		if col >= column {
			break
		}
		units += utf16Len(r)
		col++
	}
	pos.Character = uint32(units)
	return pos
}

func (li lineIndex) fromLSP(pos protocol.Position) (line, column int) {
	line = int(pos.Line) + 1
	column = 1
	if line > len(li) {
		return line, column
	}

	units := 0
	for _, r := range li[line-1] {
		if units >= int(pos.Character) {
			break
		}
		units += utf16Len(r)
		column++
	}
	return line, column
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// offset converts an LSP position into a byte offset within text.
func offset(text string, pos protocol.Position) int {
	off := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}

	units := 0
	for off < len(text) && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(text[off:])
		if r == '\n' {
			break
		}
		units += utf16Len(r)
		off += size
	}
	return off
}

func applyEdit(text string, rng protocol.Range, newText string) string {
	start := offset(text, rng.Start)
	end := max(offset(text, rng.End), start)
	return text[:start] + newText + text[end:]
}

func endPosition(text string) protocol.Position {
	lines := newLineIndex(text)
	last := lines[len(lines)-1]
	units := 0
	for _, r := range last {
		units += utf16Len(r)
	}
	return protocol.Position{Line: uint32(len(lines) - 1), Character: uint32(units)}
}
