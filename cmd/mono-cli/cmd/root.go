// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"mono/internal/config"
)

// errReported marks failures whose diagnostics were already written.
var errReported = errors.New("errors reported")

type options struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "mono-cli",
		Short: "Run, inspect and format mono programs",
		Long: `mono-cli runs mono source files, dumps their tokens or syntax
trees, formats them, or starts an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./.mono.toml or $"+config.EnvVar+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newRunCmd(opts), newReplCmd(opts), newFmtCmd())
	return root
}

// Execute runs the command line and prints any error not already reported.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	}
	return err
}

func (o *options) setup() error {
	cfg, err := config.Discover(o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg

	verbosity := cfg.Log.Verbosity
	if o.verbose {
		verbosity = 2
	}
	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(verbosity, path)

	color.NoColor = !cfg.UseColor(!color.NoColor)

	if cfg.Path != "" {
		commonlog.GetLogger("mono.cli").Debug("loaded config", "path", cfg.Path)
	}
	return nil
}
