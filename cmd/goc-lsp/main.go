// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"goc/internal/lsp"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "goc" // Name identifier for the language server

var handler protocol.Handler

func main() {
	// 1 = info level, nil = stderr
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("goc.lsp")

	gocHandler := lsp.NewGocHandler()

	handler = protocol.Handler{
		Initialize:                     gocHandler.Initialize,
		Initialized:                    gocHandler.Initialized,
		Shutdown:                       gocHandler.Shutdown,
		SetTrace:                       gocHandler.SetTrace,
		TextDocumentDidOpen:            gocHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           gocHandler.TextDocumentDidClose,
		TextDocumentDidChange:          gocHandler.TextDocumentDidChange,
		TextDocumentHover:              gocHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: gocHandler.TextDocumentSemanticTokensFull,
	}

	// debug = false keeps the JSON-RPC traffic out of the log
	s := server.NewServer(&handler, lsName, false)

	log.Info("starting goc language server")

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
