package main

import (
	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/server"
)

var (
	flagServeAddr    string
	flagServeWalkAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve board analysis over HTTP",
	Long: `Start an HTTP server that accepts webhook payloads.

Routes:
  GET  /         snake info
  POST /start    logs the game start
  POST /analyze  returns the analysis report as JSON
  POST /end      logs the result

Examples:
  bsutil serve
  bsutil serve --addr :9000 --walk-all`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&flagServeWalkAll, "walk-all", false, "Run the perimeter walk for every legal move")
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	info := server.Info{Author: cfg.Server.Author, Color: cfg.Server.Color, Version: version}
	return server.New(newAnalyzer(flagServeWalkAll), info, logger).ListenAndServe(addr)
}
