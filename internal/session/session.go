// Package session drives the lexer, parser and evaluator over one persistent
// environment. It never prints; callers decide how values and errors are
// shown.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"mono/internal/ast"
	"mono/internal/config"
	"mono/internal/evaluator"
	"mono/internal/parser"
)

type Session struct {
	ID uuid.UUID

	env       *evaluator.Environment
	evaluator *evaluator.Evaluator
	parseOpts []parser.Option
	log       commonlog.Logger
}

// New creates a session with an empty environment. A nil cfg uses the
// defaults.
func New(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	id := uuid.New()
	return &Session{
		ID:        id,
		env:       evaluator.NewEnvironment(),
		evaluator: &evaluator.Evaluator{MaxDepth: cfg.Limits.MaxEvalDepth},
		parseOpts: []parser.Option{parser.WithMaxDepth(cfg.Limits.MaxParseDepth)},
		log:       commonlog.NewKeyValueLogger(commonlog.GetLogger("mono.session"), "session", id.String()),
	}
}

// Names lists the variables bound so far, sorted.
func (s *Session) Names() []string {
	return s.env.Names()
}

// RunLine evaluates a single statement. Blank input yields a nil value and no
// error. Bindings made before a runtime error are kept.
func (s *Session) RunLine(text string) (evaluator.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens, err := parser.Tokenize(text)
	if err != nil {
		s.log.Debug("lex failed", "error", err)
		return nil, err
	}

	stmt, err := parser.Parse(tokens, s.parseOpts...)
	if err != nil {
		s.log.Debug("parse failed", "error", err)
		return nil, err
	}

	return s.evaluate(stmt)
}

// RunSource evaluates every statement of a program in order and returns the
// last value, or None for a program with no statements.
func (s *Session) RunSource(filename, text string) (evaluator.Value, error) {
	program, err := s.Parse(filename, text)
	if err != nil {
		s.log.Debug("parse failed", "file", filename, "error", err)
		return nil, err
	}
	s.log.Info("running program", "file", filename, "statements", len(program.Statements))
	return s.evaluate(program)
}

// Tokens returns the token stream of text, ending with EOF.
func (s *Session) Tokens(text string) ([]parser.Token, error) {
	return parser.Tokenize(text)
}

// Parse builds the syntax tree for text without evaluating it.
func (s *Session) Parse(filename, text string) (*ast.Program, error) {
	return parser.ParseSource(filename, text, s.parseOpts...)
}

func (s *Session) evaluate(node ast.Node) (evaluator.Value, error) {
	v, err := s.evaluator.Evaluate(node, s.env)
	if err != nil {
		s.log.Debug("evaluation failed", "error", err)
		return nil, err
	}
	s.log.Debug("evaluated", "kind", v.Kind().String(), "bindings", s.env.Len())
	return v, nil
}
