package parser

// Keywords are case-sensitive; "True" is an identifier.
var KEYWORDS = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"none":  NONE,
	"not":   NOT,
	"and":   AND,
	"or":    OR,
}
