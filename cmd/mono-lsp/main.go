// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"mono/internal/config"
	"mono/internal/lsp"
)

const lsName = "mono" // Name identifier for the language server

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	cfgFile := flag.String("config", "", "config file")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	cfg, err := config.Discover(*cfgFile)
	if err != nil {
		commonlog.Configure(0, nil)
		commonlog.GetLogger("mono.lsp").Errorf("failed to load config: %s", err)
		os.Exit(1)
	}

	verbosity := cfg.Log.Verbosity
	if *verbose {
		verbosity = 2
	}
	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(verbosity, logPath)
	log := commonlog.GetLogger("mono.lsp")

	monoHandler := lsp.NewMonoHandler(cfg.Limits)

	handler = protocol.Handler{
		Initialize:                     monoHandler.Initialize,
		Initialized:                    monoHandler.Initialized,
		Shutdown:                       monoHandler.Shutdown,
		SetTrace:                       monoHandler.SetTrace,
		TextDocumentDidOpen:            monoHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           monoHandler.TextDocumentDidClose,
		TextDocumentDidChange:          monoHandler.TextDocumentDidChange,
		TextDocumentCompletion:         monoHandler.TextDocumentCompletion,
		TextDocumentHover:              monoHandler.TextDocumentHover,
		TextDocumentFormatting:         monoHandler.TextDocumentFormatting,
		TextDocumentSemanticTokensFull: monoHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Noticef("starting %s language server %s", lsName, version)

	// editors talk to the server over stdin/stdout
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
