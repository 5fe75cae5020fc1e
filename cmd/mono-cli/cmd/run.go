// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mono/internal/ast"
	"mono/internal/errors"
	"mono/internal/evaluator"
	"mono/internal/session"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		tokens bool
		tree   bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Execute a mono source file",
		Long: `Execute every statement of FILE in one environment and print the
value of the last statement. With --tokens or --ast the file is only
tokenized or parsed and the result is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatYAML {
				return fmt.Errorf("unknown format %q, want %q or %q", format, formatText, formatYAML)
			}

			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			r := &runner{
				path:    path,
				source:  string(source),
				session: session.New(opts.cfg),
				out:     cmd.OutOrStdout(),
				errOut:  cmd.ErrOrStderr(),
			}

			start := time.Now()
			switch {
			case tokens:
				err = r.dumpTokens()
			case tree:
				err = r.dumpTree(format)
			default:
				err = r.run()
			}
			if err != nil {
				return err
			}

			if opts.verbose {
				fmt.Fprintln(r.errOut, color.GreenString("Successfully processed %s in %s", path, formatDuration(time.Since(start))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&tokens, "tokens", "t", false, "print the token stream")
	cmd.Flags().BoolVarP(&tree, "ast", "p", false, "print the syntax tree")
	cmd.Flags().StringVar(&format, "format", formatText, "syntax tree format: text or yaml")
	cmd.MarkFlagsMutuallyExclusive("tokens", "ast")
	return cmd
}

type runner struct {
	path    string
	source  string
	session *session.Session
	out     io.Writer
	errOut  io.Writer
}

func (r *runner) report(err error) error {
	reporter := errors.NewErrorReporter(r.path, r.source)
	fmt.Fprint(r.errOut, reporter.Report(err, r.session.Names()))
	return errReported
}

func (r *runner) dumpTokens() error {
	tokens, err := r.session.Tokens(r.source)
	if err != nil {
		return r.report(err)
	}
	for _, tok := range tokens {
		fmt.Fprintln(r.out, tok.String())
	}
	return nil
}

func (r *runner) dumpTree(format string) error {
	program, err := r.session.Parse(r.path, r.source)
	if err != nil {
		return r.report(err)
	}

	if format == formatYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(ast.ToMap(program)); err != nil {
			return fmt.Errorf("failed to encode syntax tree: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprint(r.out, ast.Dump(program))
	return nil
}

func (r *runner) run() error {
	value, err := r.session.RunSource(r.path, r.source)
	if err != nil {
		return r.report(err)
	}
	if _, ok := value.(evaluator.None); !ok {
		fmt.Fprintln(r.out, evaluator.Repr(value))
	}
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
