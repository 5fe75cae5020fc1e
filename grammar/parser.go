package grammar

import (
	"fmt"
	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"io"
	"os"
	"strings"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(MonoLexer),
	participle.Elide("Whitespace", "GroupSpace"),
	participle.UseLookahead(2),
)

// Parse parses source. A missing final newline is supplied.
func Parse(filename, source string) (*Program, error) {
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	return parser.ParseString(filename, source)
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// ReportParseError writes a caret-style syntax error message to w.
func ReportParseError(w io.Writer, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		fmt.Fprintln(w, color.RedString("unexpected error: %s", err))
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		fmt.Fprintln(w, color.RedString("syntax error at unknown location: %s", err))
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	name := pos.Filename
	if name == "" {
		name = "<stdin>"
	}
	fmt.Fprintln(w, color.RedString("syntax error in %s at line %d, column %d:", name, pos.Line, pos.Column))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, color.HiRedString(caret))
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
