package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mono/internal/ast"
)

func parseString(t *testing.T, source string) ast.Expr {
	t.Helper()
	tokens, err := Tokenize(source)
	require.NoError(t, err)
	expr, err := Parse(tokens)
	require.NoError(t, err)
	return expr
}

func parseError(t *testing.T, source string, opts ...Option) *ParseError {
	t.Helper()
	tokens, err := Tokenize(source)
	require.NoError(t, err)
	_, err = Parse(tokens, opts...)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	return parseErr
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		source string
		check  func(t *testing.T, expr ast.Expr)
	}{
		{"42", func(t *testing.T, expr ast.Expr) {
			lit, ok := expr.(*ast.IntLiteral)
			require.True(t, ok, "expected IntLiteral, got %T", expr)
			assert.Equal(t, int64(42), lit.Value)
		}},
		{"2.5", func(t *testing.T, expr ast.Expr) {
			lit, ok := expr.(*ast.FloatLiteral)
			require.True(t, ok, "expected FloatLiteral, got %T", expr)
			assert.Equal(t, 2.5, lit.Value)
		}},
		{`"hi\n"`, func(t *testing.T, expr ast.Expr) {
			lit, ok := expr.(*ast.StringLiteral)
			require.True(t, ok, "expected StringLiteral, got %T", expr)
			assert.Equal(t, "hi\n", lit.Value)
			assert.Equal(t, `"hi\n"`, lit.Raw)
		}},
		{`'x'`, func(t *testing.T, expr ast.Expr) {
			lit, ok := expr.(*ast.CharLiteral)
			require.True(t, ok, "expected CharLiteral, got %T", expr)
			assert.Equal(t, 'x', lit.Value)
		}},
		{"false", func(t *testing.T, expr ast.Expr) {
			lit, ok := expr.(*ast.BoolLiteral)
			require.True(t, ok, "expected BoolLiteral, got %T", expr)
			assert.False(t, lit.Value)
		}},
		{"none", func(t *testing.T, expr ast.Expr) {
			_, ok := expr.(*ast.NoneLiteral)
			assert.True(t, ok, "expected NoneLiteral, got %T", expr)
		}},
		{"counter", func(t *testing.T, expr ast.Expr) {
			ident, ok := expr.(*ast.IdentExpr)
			require.True(t, ok, "expected IdentExpr, got %T", expr)
			assert.Equal(t, "counter", ident.Name)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tt.check(t, parseString(t, tt.source))
		})
	}
}

func TestParseAssignment(t *testing.T) {
	expr := parseString(t, "total = 1 + 2")

	assign, ok := expr.(*ast.AssignExpr)
	require.True(t, ok, "expected AssignExpr, got %T", expr)
	assert.Equal(t, "total", assign.Name.Value)
	assert.Equal(t, 1, assign.Name.Pos.Column)
	assert.Equal(t, 6, assign.Name.EndPos.Column)

	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok, "expected BinaryExpr, got %T", assign.Value)
	assert.Equal(t, ast.OpAdd, bin.Op)
	assert.Equal(t, 11, bin.OpPos.Column)
}

func TestParseChainedAssignment(t *testing.T) {
	expr := parseString(t, "a = b = 3")
	assert.Equal(t, "(a = (b = 3))", expr.String())
}

func TestInvalidAssignmentTargets(t *testing.T) {
	for _, source := range []string{"1 = 2", "(a) = 1", "a + b = 3", "-a = 1"} {
		t.Run(source, func(t *testing.T) {
			err := parseError(t, source)
			assert.Equal(t, InvalidAssignmentTarget, err.Kind)
			assert.ErrorIs(t, err, ErrInvalidAssignmentTarget)
			assert.Equal(t, EQUAL, err.Token.Type)
		})
	}
}

func TestUnexpectedTokens(t *testing.T) {
	tests := []struct {
		source string
		column int
	}{
		{"1 +", 4},
		{"1 2", 3},
		{"* 3", 1},
		{"1 +\n2", 4},
		{"x = ", 5},
		{"a -> b", 3},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			err := parseError(t, tt.source)
			assert.Equal(t, UnexpectedToken, err.Kind)
			assert.ErrorIs(t, err, ErrUnexpectedToken)
			assert.Equal(t, tt.column, err.Position.Column)
		})
	}
}

func TestEmptyInputIsAnError(t *testing.T) {
	err := parseError(t, "\n\n")
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, EOF, err.Token.Type)
	assert.Contains(t, err.Expected, INTEGER)
}

func TestUnmatchedBrackets(t *testing.T) {
	for _, source := range []string{"(1 + 2", "((1)", "1 + 2)", ")", "(1 2)", "[1]"} {
		t.Run(source, func(t *testing.T) {
			err := parseError(t, source)
			if source == "[1]" {
				assert.Equal(t, UnexpectedToken, err.Kind)
				return
			}
			assert.Equal(t, UnmatchedBracket, err.Kind)
			assert.ErrorIs(t, err, ErrUnmatchedBracket)
		})
	}
}

func TestMissingCloseParenExpectsParen(t *testing.T) {
	err := parseError(t, "(1 + 2")
	assert.Equal(t, []TokenType{RIGHT_PAREN}, err.Expected)
	assert.Equal(t, EOF, err.Token.Type)
	assert.Contains(t, err.Error(), "expected ')' to close '(' at 1:1")
}

func TestNewlinesInsideParentheses(t *testing.T) {
	expr := parseString(t, "(1 +\n  2\n)")
	assert.Equal(t, "((1 + 2))", expr.String())
}

func TestNestingLimit(t *testing.T) {
	deep := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)

	err := parseError(t, deep)
	assert.Equal(t, TooDeep, err.Kind)
	assert.ErrorIs(t, err, ErrTooDeep)

	tokens, tokErr := Tokenize(deep)
	require.NoError(t, tokErr)
	_, parseErr := Parse(tokens, WithMaxDepth(1000))
	assert.NoError(t, parseErr)

	err = parseError(t, strings.Repeat("-", 50)+"1", WithMaxDepth(10))
	assert.Equal(t, TooDeep, err.Kind)
}

func TestChainedAssignmentDepth(t *testing.T) {
	err := parseError(t, strings.Repeat("a = ", 300)+"1", WithMaxDepth(200))
	assert.Equal(t, TooDeep, err.Kind)
	assert.ErrorIs(t, err, ErrTooDeep)

	expr := parseString(t, strings.Repeat("a = ", 20)+"1")
	assert.Equal(t, strings.Repeat("(a = ", 20)+"1"+strings.Repeat(")", 20), expr.String())
}

func TestParseProgram(t *testing.T) {
	source := "\n\nx = 1\n\ny = x * 2\nx + y\n"

	program, err := ParseSource("test.mono", source)
	require.NoError(t, err)
	require.Len(t, program.Statements, 3)

	assert.Equal(t, "(x = 1)", program.Statements[0].String())
	assert.Equal(t, "(y = (x * 2))", program.Statements[1].String())
	assert.Equal(t, "(x + y)", program.Statements[2].String())
	assert.Equal(t, "test.mono", program.Statements[1].NodePos().Filename)
	assert.Equal(t, 5, program.Statements[1].NodePos().Line)
}

func TestParseProgramStopsAtFirstError(t *testing.T) {
	_, err := ParseSource("test.mono", "x = 1\ny = (2\nz = 3")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, UnmatchedBracket, parseErr.Kind)

	_, err = ParseSource("test.mono", "x = \"open")
	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, UnterminatedString, scanErr.Kind)
}

func TestParseStatementIncrementally(t *testing.T) {
	tokens, err := Tokenize("a = 1\nb = 2")
	require.NoError(t, err)

	p := NewParser("", tokens)
	var got []string
	for !p.Done() {
		stmt, err := p.ParseStatement()
		require.NoError(t, err)
		got = append(got, stmt.String())
	}
	assert.Equal(t, []string{"(a = 1)", "(b = 2)"}, got)
}

func TestParseRejectsSecondStatement(t *testing.T) {
	err := parseError(t, "1\n2")
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, 2, err.Position.Line)
}

func TestParseWithoutEOFToken(t *testing.T) {
	tokens, err := Tokenize("1 + 2")
	require.NoError(t, err)

	expr, err := Parse(tokens[:len(tokens)-1])
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2)", expr.String())
}

func TestNodeSpans(t *testing.T) {
	expr := parseString(t, "(a + 10) * -b")

	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, 1, bin.Pos.Column)
	assert.Equal(t, 14, bin.EndPos.Column)

	paren, ok := bin.Left.(*ast.ParenExpr)
	require.True(t, ok)
	assert.Equal(t, 9, paren.EndPos.Column)

	neg, ok := bin.Right.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, 12, neg.Pos.Column)
}
