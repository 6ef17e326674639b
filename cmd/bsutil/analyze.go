package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/store"
	"github.com/rninformatics/battlesnake-utils/viewer"
)

var (
	flagAnalyzeYou     string
	flagAnalyzeWalkAll bool
	flagAnalyzeJSON    bool
	flagAnalyzeParquet string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <snapshot.json>",
	Short: "Print the board and the per-move analysis",
	Long: `Decode a webhook payload and report, for every direction, whether the
move is free, legal this turn, heading into a dead end, and whether it leads
to a t-choice. At a t-choice the perimeter walk estimates the reachable area.

Examples:
  bsutil analyze turn42.json
  bsutil analyze turn42.json --you gs_other --walk-all
  bsutil analyze turn42.json --json
  cat turn42.json | bsutil analyze -`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagAnalyzeYou, "you", "", "Analyze for this snake id instead of the payload's you")
	analyzeCmd.Flags().BoolVar(&flagAnalyzeWalkAll, "walk-all", false, "Run the perimeter walk for every legal move")
	analyzeCmd.Flags().BoolVar(&flagAnalyzeJSON, "json", false, "Print the report as JSON")
	analyzeCmd.Flags().StringVar(&flagAnalyzeParquet, "parquet", "", "Also write the report as a one-row parquet file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	st, err := loadState(args[0], flagAnalyzeYou)
	if err != nil {
		return err
	}

	report := newAnalyzer(flagAnalyzeWalkAll).Analyze(st)

	if flagAnalyzeParquet != "" {
		row := store.RowFromReport("", "analyze", st.Board.Width, st.Board.Height, report)
		if err := store.WriteAnalysisParquet(flagAnalyzeParquet, []store.AnalysisRow{row}); err != nil {
			return err
		}
		logger.Info("wrote report", "path", flagAnalyzeParquet)
	}

	if flagAnalyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	styles := viewer.DefaultStyles()
	fmt.Fprint(cmd.OutOrStdout(), viewer.Board(st.Board, styles))
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), viewer.Report(report, styles))
	return nil
}
