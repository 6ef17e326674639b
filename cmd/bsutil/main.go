// bsutil inspects Battlesnake boards: move safety, dead ends and the area
// reachable behind a t-junction.
//
// Usage:
//
//	bsutil analyze <snapshot.json>   - Print the board and the per-move report
//	bsutil render <snapshot.json>    - Print the board in colour
//	bsutil walk <snapshot.json>      - Step the perimeter walk interactively
//	bsutil replay <game-id>...       - Analyze every turn of finished games into parquet
//	bsutil discover                  - List game ids from the leaderboard
//	bsutil serve                     - Serve analysis over HTTP
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.bsutil/config.yaml, ./configs/bsutil.yaml)
//	--log-level <level>  - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/config"
	"github.com/rninformatics/battlesnake-utils/logging"
)

const version = "0.1.0"

var (
	// Global flags
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bsutil",
	Short: "Battlesnake board analysis tools",
	Long: `bsutil analyzes Battlesnake game snapshots: which moves are legal, which
lead into dead ends, and how much room lies behind a t-junction.

Snapshots are webhook payloads (the JSON a snake server receives on /move).
Use "-" to read one from stdin.

Examples:
  bsutil analyze turn42.json
  bsutil walk turn42.json --dir up
  bsutil replay 8ca0476c-5c80-4f92-9117-ff914e51f10a --you gs_abc
  bsutil serve --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json, logfmt)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Log.Format = flagLogFormat
	}
	logger, err = logging.Install(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	return err
}

func newAnalyzer(alwaysWalk bool) *analysis.Analyzer {
	return &analysis.Analyzer{
		Limits:     cfg.Walk,
		AlwaysWalk: alwaysWalk || cfg.Analysis.AlwaysWalk,
		Logger:     logger,
	}
}

func walkOptions() []analysis.Option {
	return []analysis.Option{analysis.WithLimits(cfg.Walk), analysis.WithLogger(logger)}
}
