package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/viewer"
)

var flagRenderPlain bool

var renderCmd = &cobra.Command{
	Use:   "render <snapshot.json>",
	Short: "Print the board of a snapshot",
	Long: `Print the board with increasing y going up. Glyphs: f food, . hazard,
H head, T tail, digits are snake bodies by index.

Examples:
  bsutil render turn42.json
  bsutil render turn42.json --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&flagRenderPlain, "plain", false, "Disable colour")
}

func runRender(cmd *cobra.Command, args []string) error {
	st, err := loadState(args[0], "")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagRenderPlain {
		fmt.Fprint(out, st.Board.String())
		return nil
	}
	fmt.Fprint(out, viewer.Board(st.Board, viewer.DefaultStyles()))
	return nil
}
