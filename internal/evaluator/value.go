package evaluator

import (
	"fmt"
	"strconv"

	"mono/internal/ast"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindString
	KindCharacter
	KindNone
)

var kindNames = [...]string{
	KindInteger:   "integer",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindCharacter: "character",
	KindNone:      "none",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the result of evaluating an expression. String renders the value
// the way it is printed to users.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

type (
	Integer   int64
	Float     float64
	Boolean   bool
	String    string
	Character rune
	None      struct{}
)

func (Integer) Kind() Kind   { return KindInteger }
func (Float) Kind() Kind     { return KindFloat }
func (Boolean) Kind() Kind   { return KindBoolean }
func (String) Kind() Kind    { return KindString }
func (Character) Kind() Kind { return KindCharacter }
func (None) Kind() Kind      { return KindNone }

func (i Integer) String() string   { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string     { return ast.FormatFloat(float64(f)) }
func (b Boolean) String() string   { return strconv.FormatBool(bool(b)) }
func (s String) String() string    { return string(s) }
func (c Character) String() string { return string(rune(c)) }
func (None) String() string        { return "none" }

func (Integer) isValue()   {}
func (Float) isValue()     {}
func (Boolean) isValue()   {}
func (String) isValue()    {}
func (Character) isValue() {}
func (None) isValue()      {}

// Repr renders v as it would be written in source: strings and characters
// are quoted and escaped.
func Repr(v Value) string {
	switch v := v.(type) {
	case String:
		return ast.Quote(string(v), '"')
	case Character:
		return ast.Quote(string(rune(v)), '\'')
	case nil:
		return "none"
	}
	return v.String()
}
