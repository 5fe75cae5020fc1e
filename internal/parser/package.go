package parser

import "mono/internal/ast"

// ParseSource tokenizes and parses a whole source file. The first lexical or
// grammar error stops processing and is returned.
func ParseSource(path string, source string, opts ...Option) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseProgram(path, tokens, opts...)
}
