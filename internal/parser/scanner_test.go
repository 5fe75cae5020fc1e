package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "true false none not and or customIdent _x1 True"
	expected := []TokenType{
		TRUE, FALSE, NONE, NOT, AND, OR, IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF,
	}

	tokens, err := Tokenize(input)
	require.NoError(t, err)

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Type)
		}
	}

	assert.Equal(t, true, tokens[0].Literal)
	assert.Equal(t, false, tokens[1].Literal)
	assert.Equal(t, "customIdent", tokens[6].Literal)
}

func TestNumbers(t *testing.T) {
	tokens, err := Tokenize("42 0 3.14 10.0")
	require.NoError(t, err)

	assert.Equal(t, []TokenType{INTEGER, INTEGER, FLOAT, FLOAT, EOF}, tokenTypes(tokens))
	assert.Equal(t, int64(42), tokens[0].Literal)
	assert.Equal(t, int64(0), tokens[1].Literal)
	assert.Equal(t, 3.14, tokens[2].Literal)
	assert.Equal(t, 10.0, tokens[3].Literal)
	assert.Equal(t, "10.0", tokens[3].Lexeme)
}

func TestNumberFollowedByIdentifier(t *testing.T) {
	tokens, err := Tokenize("12abc")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INTEGER, IDENTIFIER, EOF}, tokenTypes(tokens))
}

func TestInvalidNumbers(t *testing.T) {
	for _, input := range []string{"1.", "1.2.3", "99999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := Tokenize(input)
			var scanErr *ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, InvalidNumber, scanErr.Kind)
			assert.True(t, errors.Is(err, ErrInvalidNumber))
			assert.Equal(t, 1, scanErr.Position.Column)
		})
	}
}

func TestStrings(t *testing.T) {
	tokens, err := Tokenize(`"hello" "a\tb\n" "say \"hi\"" ""`)
	require.NoError(t, err)

	assert.Equal(t, []TokenType{STRING, STRING, STRING, STRING, EOF}, tokenTypes(tokens))
	assert.Equal(t, `"hello"`, tokens[0].Lexeme)
	assert.Equal(t, "hello", tokens[0].Literal)
	assert.Equal(t, "a\tb\n", tokens[1].Literal)
	assert.Equal(t, `say "hi"`, tokens[2].Literal)
	assert.Equal(t, "", tokens[3].Literal)
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ScanErrorKind
	}{
		{`"abc`, UnterminatedString},
		{"\"abc\ndef\"", UnterminatedString},
		{`"abc\`, UnterminatedString},
		{`"bad \q escape"`, InvalidEscape},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var scanErr *ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, tt.kind, scanErr.Kind)
		})
	}
}

func TestInvalidEscapePosition(t *testing.T) {
	_, err := Tokenize(`x = "ab\q"`)
	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, InvalidEscape, scanErr.Kind)
	assert.Equal(t, 8, scanErr.Position.Column)
	assert.Equal(t, 2, scanErr.Length)
}

func TestChars(t *testing.T) {
	tokens, err := Tokenize(`'a' '\n' 'é' '\''`)
	require.NoError(t, err)

	assert.Equal(t, []TokenType{CHAR, CHAR, CHAR, CHAR, EOF}, tokenTypes(tokens))
	assert.Equal(t, 'a', tokens[0].Literal)
	assert.Equal(t, '\n', tokens[1].Literal)
	assert.Equal(t, 'é', tokens[2].Literal)
	assert.Equal(t, '\'', tokens[3].Literal)
	assert.Equal(t, 10, tokens[2].Position.Column)
}

func TestCharErrors(t *testing.T) {
	for _, input := range []string{`''`, `'ab'`, `'a`} {
		t.Run(input, func(t *testing.T) {
			_, err := Tokenize(input)
			var scanErr *ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, InvalidCharLiteral, scanErr.Kind)
			assert.ErrorIs(t, err, ErrInvalidCharLiteral)
		})
	}
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `(){}[]+-*/%** = == != < <= > >= -> =>`
	expected := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, LEFT_BRACKET, RIGHT_BRACKET,
		PLUS, MINUS, STAR, SLASH, PERCENT, STAR_STAR,
		EQUAL, EQUAL_EQUAL, BANG_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		ARROW, DOUBLE_ARROW, EOF,
	}

	tokens, err := Tokenize(input)
	require.NoError(t, err)

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Type)
		}
	}
}

func TestMaximalMunch(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"***", []TokenType{STAR_STAR, STAR, EOF}},
		{"===", []TokenType{EQUAL_EQUAL, EQUAL, EOF}},
		{"-->", []TokenType{MINUS, ARROW, EOF}},
		{"<==", []TokenType{LESS_EQUAL, EQUAL, EOF}},
		{"a==-b", []TokenType{IDENTIFIER, EQUAL_EQUAL, MINUS, IDENTIFIER, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokenTypes(tokens))
		})
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		input  string
		char   rune
		column int
	}{
		{"a ! b", '!', 3},
		{"x = 1 @ 2", '@', 7},
		{"é", 'é', 1},
		{"1;", ';', 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var scanErr *ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, UnexpectedCharacter, scanErr.Kind)
			assert.Equal(t, tt.char, scanErr.Char)
			assert.Equal(t, tt.column, scanErr.Position.Column)
		})
	}
}

func TestNewlinesAndPositions(t *testing.T) {
	tokens, err := Tokenize("a = 1\n  b\r\n")
	require.NoError(t, err)

	assert.Equal(t, []TokenType{IDENTIFIER, EQUAL, INTEGER, NEWLINE, IDENTIFIER, NEWLINE, EOF}, tokenTypes(tokens))

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 1, Column: 5, Offset: 4}, tokens[2].Position)
	assert.Equal(t, Position{Line: 1, Column: 6, Offset: 5}, tokens[3].Position)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 8}, tokens[4].Position)
	assert.Equal(t, 3, tokens[6].Position.Line)
}

func TestEmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, EOF, tokens[0].Type)

	tokens, err = Tokenize("   \t ")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{EOF}, tokenTypes(tokens))
}

func TestNextTokenIsSticky(t *testing.T) {
	s := NewScanner("1 $ 2")

	tok, err := s.NextToken()
	require.NoError(t, err)
	assert.Equal(t, INTEGER, tok.Type)

	_, err1 := s.NextToken()
	_, err2 := s.NextToken()
	require.Error(t, err1)
	assert.Same(t, err1, err2)

	s = NewScanner("x")
	_, _ = s.NextToken()
	for range 3 {
		tok, err := s.NextToken()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Type)
	}
}

func TestTokensSequence(t *testing.T) {
	var types []TokenType
	for tok, err := range Tokens("a + 1") {
		require.NoError(t, err)
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{IDENTIFIER, PLUS, INTEGER, EOF}, types)

	var gotErr error
	count := 0
	for _, err := range Tokens("a # b") {
		if err != nil {
			gotErr = err
			continue
		}
		count++
	}
	assert.ErrorIs(t, gotErr, ErrUnexpectedCharacter)
	assert.Equal(t, 1, count)
}

func TestTokenString(t *testing.T) {
	tokens, err := Tokenize(`x "hi" 3`)
	require.NoError(t, err)

	assert.Equal(t, `1:1 IDENTIFIER "x"`, tokens[0].String())
	assert.Equal(t, `1:3 STRING "\"hi\"" => "hi"`, tokens[1].String())
	assert.Equal(t, `1:8 INTEGER "3" => 3`, tokens[2].String())
}
