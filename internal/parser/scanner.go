package parser

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Token struct {
	Type     TokenType
	Lexeme   string // exact source text
	Literal  any    // string, rune, int64, float64 or bool for literal kinds
	Position Position
}

// String renders the token as `line:col TYPE "lexeme"`, followed by the
// decoded payload for literal kinds.
func (t Token) String() string {
	base := fmt.Sprintf("%s %s %q", t.Position, t.Type, t.Lexeme)
	if t.Type == IDENTIFIER || t.Literal == nil {
		return base
	}
	return base + " => " + formatLiteral(t.Literal)
}

func formatLiteral(v any) string {
	switch lit := v.(type) {
	case string:
		return strconv.Quote(lit)
	case rune:
		return strconv.QuoteRune(lit)
	case int64:
		return strconv.FormatInt(lit, 10)
	case float64:
		return strconv.FormatFloat(lit, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(lit)
	}
	return fmt.Sprint(v)
}

type Scanner struct {
	source      string
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
	err         *ScanError
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole source and returns the token slice terminated by
// EOF, or the first lexical error.
func Tokenize(source string) ([]Token, error) {
	return NewScanner(source).ScanTokens()
}

// Tokens returns a lazy token sequence. Each range over it starts a fresh
// scan. On failure the error is yielded once and the sequence ends.
func Tokens(source string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		s := NewScanner(source)
		for {
			tok, err := s.NextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) || tok.Type == EOF {
				return
			}
		}
	}
}

func (s *Scanner) ScanTokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token. After EOF it keeps returning EOF; after
// an error it keeps returning the same error.
func (s *Scanner) NextToken() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column

		tok, emit, err := s.scanToken()
		if err != nil {
			s.err = err
			return Token{}, err
		}
		if emit {
			return tok, nil
		}
	}

	return Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}}, nil
}

func (s *Scanner) scanToken() (Token, bool, *ScanError) {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		return s.makeToken(LEFT_PAREN), true, nil
	case ')':
		return s.makeToken(RIGHT_PAREN), true, nil
	case '{':
		return s.makeToken(LEFT_BRACE), true, nil
	case '}':
		return s.makeToken(RIGHT_BRACE), true, nil
	case '[':
		return s.makeToken(LEFT_BRACKET), true, nil
	case ']':
		return s.makeToken(RIGHT_BRACKET), true, nil
	case '+':
		return s.makeToken(PLUS), true, nil
	case '/':
		return s.makeToken(SLASH), true, nil
	case '%':
		return s.makeToken(PERCENT), true, nil

	// Operators with potential multi-character variants
	case '-':
		return s.scanMinusOperator(), true, nil
	case '*':
		return s.scanStarOperator(), true, nil
	case '=':
		return s.scanEqualOperator(), true, nil
	case '<':
		return s.scanLessOperator(), true, nil
	case '>':
		return s.scanGreaterOperator(), true, nil
	case '!':
		if s.matchNext('=') {
			return s.makeToken(BANG_EQUAL), true, nil
		}
		return Token{}, false, s.unexpected('!')

	// Whitespace (ignored)
	case ' ', '\r', '\t':
		return Token{}, false, nil
	case '\n':
		return s.makeToken(NEWLINE), true, nil

	case '"':
		tok, err := s.scanString()
		return tok, err == nil, err
	case '\'':
		tok, err := s.scanChar()
		return tok, err == nil, err
	}

	return s.scanDefault(c)
}

func (s *Scanner) scanMinusOperator() Token {
	if s.matchNext('>') {
		return s.makeToken(ARROW)
	}
	return s.makeToken(MINUS)
}

func (s *Scanner) scanStarOperator() Token {
	if s.matchNext('*') {
		return s.makeToken(STAR_STAR)
	}
	return s.makeToken(STAR)
}

func (s *Scanner) scanEqualOperator() Token {
	if s.matchNext('=') {
		return s.makeToken(EQUAL_EQUAL)
	} else if s.matchNext('>') {
		return s.makeToken(DOUBLE_ARROW)
	}
	return s.makeToken(EQUAL)
}

func (s *Scanner) scanLessOperator() Token {
	if s.matchNext('=') {
		return s.makeToken(LESS_EQUAL)
	}
	return s.makeToken(LESS)
}

func (s *Scanner) scanGreaterOperator() Token {
	if s.matchNext('=') {
		return s.makeToken(GREATER_EQUAL)
	}
	return s.makeToken(GREATER)
}

func (s *Scanner) scanDefault(c byte) (Token, bool, *ScanError) {
	if isDigit(c) {
		tok, err := s.scanNumber()
		return tok, err == nil, err
	}
	if isAlpha(c) {
		return s.scanIdentifier(), true, nil
	}

	// Re-decode in case c is the lead byte of a multi-byte rune.
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	for i := 1; i < size; i++ {
		s.advance()
	}
	return Token{}, false, s.unexpected(r)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else if utf8.RuneStart(c) {
		s.column++
	}
	return c
}

func (s *Scanner) advanceRune() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	for i := 0; i < size; i++ {
		s.advance()
	}
	return r
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) makeToken(tokenType TokenType) Token {
	return Token{
		Type:   tokenType,
		Lexeme: s.source[s.start:s.current],
		Position: Position{
			Line:   s.startLine,
			Column: s.startColumn,
			Offset: s.start,
		},
	}
}

func (s *Scanner) errorAt(kind ScanErrorKind, pos Position, length int, message string) *ScanError {
	return &ScanError{
		Kind:     kind,
		Message:  message,
		Position: pos,
		Length:   length,
	}
}

func (s *Scanner) startPos() Position {
	return Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) reportError(kind ScanErrorKind, message string) *ScanError {
	return s.errorAt(kind, s.startPos(), utf8.RuneCountInString(s.source[s.start:s.current]), message)
}

func (s *Scanner) unexpected(r rune) *ScanError {
	err := s.reportError(UnexpectedCharacter, fmt.Sprintf("unexpected character %q", r))
	err.Char = r
	return err
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func (s *Scanner) scanIdentifier() Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]

	tok := s.makeToken(lookupIdentifier(text))
	switch tok.Type {
	case IDENTIFIER:
		tok.Literal = text
	case TRUE:
		tok.Literal = true
	case FALSE:
		tok.Literal = false
	}
	return tok
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) scanNumber() (Token, *ScanError) {
	for isDigit(s.peek()) {
		s.advance()
	}

	isFloat := false
	if s.peek() == '.' {
		s.advance()
		if !isDigit(s.peek()) {
			return Token{}, s.reportError(InvalidNumber, "expected digit after decimal point")
		}
		for isDigit(s.peek()) {
			s.advance()
		}
		if s.peek() == '.' {
			for s.peek() == '.' || isDigit(s.peek()) {
				s.advance()
			}
			return Token{}, s.reportError(InvalidNumber, "number has more than one decimal point")
		}
		isFloat = true
	}

	tok := s.makeToken(INTEGER)
	if isFloat {
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return Token{}, s.reportError(InvalidNumber, fmt.Sprintf("float literal %s is out of range", tok.Lexeme))
		}
		tok.Type = FLOAT
		tok.Literal = f
		return tok, nil
	}

	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return Token{}, s.reportError(InvalidNumber, fmt.Sprintf("integer literal %s is out of range", tok.Lexeme))
	}
	tok.Literal = n
	return tok, nil
}

var escapes = map[byte]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// scanEscape is called after a backslash has been consumed. ok is false when
// the literal ends before the escape is complete.
func (s *Scanner) scanEscape() (r rune, ok bool, err *ScanError) {
	if s.isAtEnd() || s.peek() == '\n' {
		return 0, false, nil
	}
	pos := Position{Line: s.line, Column: s.column - 1, Offset: s.current - 1}
	c := s.peek()
	if r, found := escapes[c]; found {
		s.advance()
		return r, true, nil
	}
	bad := s.advanceRune()
	return 0, true, s.errorAt(InvalidEscape, pos, 2, fmt.Sprintf("unknown escape sequence \\%c", bad))
}

func (s *Scanner) scanString() (Token, *ScanError) {
	var b strings.Builder
	for {
		if s.isAtEnd() || s.peek() == '\n' {
			return Token{}, s.reportError(UnterminatedString, "unterminated string")
		}
		c := s.advance()
		if c == '"' {
			break
		}
		if c == '\\' {
			r, ok, err := s.scanEscape()
			if err != nil {
				return Token{}, err
			}
			if !ok {
				return Token{}, s.reportError(UnterminatedString, "unterminated string")
			}
			b.WriteRune(r)
			continue
		}
		b.WriteByte(c)
	}

	tok := s.makeToken(STRING)
	tok.Literal = b.String()
	return tok, nil
}

func (s *Scanner) scanChar() (Token, *ScanError) {
	var runes []rune
	for {
		if s.isAtEnd() || s.peek() == '\n' {
			return Token{}, s.reportError(InvalidCharLiteral, "unterminated character literal")
		}
		if s.peek() == '\'' {
			s.advance()
			break
		}
		if s.peek() == '\\' {
			s.advance()
			r, ok, err := s.scanEscape()
			if err != nil {
				return Token{}, err
			}
			if !ok {
				return Token{}, s.reportError(InvalidCharLiteral, "unterminated character literal")
			}
			runes = append(runes, r)
			continue
		}
		runes = append(runes, s.advanceRune())
	}

	switch len(runes) {
	case 0:
		return Token{}, s.reportError(InvalidCharLiteral, "empty character literal")
	case 1:
		tok := s.makeToken(CHAR)
		tok.Literal = runes[0]
		return tok, nil
	}
	return Token{}, s.reportError(InvalidCharLiteral, "character literal must contain exactly one character")
}
