package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MonoLexer tokenizes mono source. Newlines end statements except inside
// parentheses, where the Group state treats them as whitespace.
var MonoLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"LParen", `\(`, lexer.Push("Group")},
		{"RParen", `\)`, nil},
		{"Newline", `\n`, nil},
		{"Whitespace", `[ \t\r]+`, nil},
		lexer.Include("Common"),
	},
	"Group": {
		{"LParen", `\(`, lexer.Push("Group")},
		{"RParen", `\)`, lexer.Pop()},
		{"GroupSpace", `[ \t\r\n]+`, nil},
		lexer.Include("Common"),
	},
	"Common": {
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Int", `[0-9]+`, nil},
		{"String", `"(\\.|[^"\\\n])*"`, nil},
		{"Char", `'(\\.|[^'\\\n])'`, nil},
		{"Keyword", `(true|false|none|not|and|or)\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Operator", `\*\*|==|!=|<=|>=|[-+*/%<>=]`, nil},
	},
})
