// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"mono/internal/config"
	"mono/repl"
)

func main() {
	cfg, err := config.Discover("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)

	if currentUser, err := user.Current(); err == nil && cfg.REPL.Banner {
		fmt.Printf("Welcome to the mono REPL, %s!\n", currentUser.Username)
	}

	if err := repl.Start(os.Stdin, os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
