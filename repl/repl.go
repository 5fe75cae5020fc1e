// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"mono/internal/builtins"
	"mono/internal/config"
	"mono/internal/errors"
	"mono/internal/evaluator"
	"mono/internal/session"
)

const (
	PROMPT = ">> "

	// clearScreen moves the cursor home and erases the display.
	clearScreen = "\033[H\033[2J"
)

// Start reads statements from in until EOF or "quit", evaluating each line
// in one session and writing values and diagnostics to out. Typing "clear"
// clears the terminal but keeps every variable.
func Start(in io.Reader, out io.Writer, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	prompt := cfg.REPL.Prompt
	if prompt == "" {
		prompt = PROMPT
	}

	renderer := lipgloss.NewRenderer(out)
	promptStyle := renderer.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	valueStyle := renderer.NewStyle().Foreground(lipgloss.Color("10"))

	log := commonlog.GetLogger("mono.repl")
	sess := session.New(cfg)
	log.Info("session started", "session", sess.ID.String())

	if cfg.REPL.Banner {
		fmt.Fprintln(out, banner(renderer))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptStyle.Render(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := scanner.Text()
		if cmd, ok := builtins.Lookup(line); ok {
			switch cmd {
			case builtins.Quit:
				log.Info("session ended", "session", sess.ID.String())
				return nil
			case builtins.Clear:
				fmt.Fprint(out, clearScreen)
				continue
			}
		}

		value, err := sess.RunLine(line)
		if err != nil {
			reporter := errors.NewErrorReporter("", line)
			fmt.Fprint(out, reporter.Report(err, sess.Names()))
			continue
		}
		if value != nil {
			fmt.Fprintln(out, valueStyle.Render(evaluator.Repr(value)))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	log.Info("session ended", "session", sess.ID.String())
	return nil
}

func banner(r *lipgloss.Renderer) string {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")).Render("mono")
	hint := r.NewStyle().Faint(true).Render(fmt.Sprintf(`type %q to exit, %q to clear the screen`, builtins.Quit, builtins.Clear))
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(title + "\n" + hint)
}
