package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/game"
	"github.com/rninformatics/battlesnake-utils/viewer"
)

var (
	flagWalkX        int
	flagWalkY        int
	flagWalkDir      string
	flagWalkInterval time.Duration
	flagWalkBatch    bool
)

var walkCmd = &cobra.Command{
	Use:   "walk <snapshot.json>",
	Short: "Step the perimeter walk over a snapshot",
	Long: `Run the boundary-following walk that estimates the area of the free
region around a cell. Without --x/--y the walk starts on the cell ahead of
the ego snake's head, heading in --dir (default: the way the snake faces).

Keys: space/enter step, a autoplay, r run to end, q quit.

Examples:
  bsutil walk turn42.json
  bsutil walk turn42.json --x 3 --y 7 --dir left
  bsutil walk turn42.json --batch`,
	Args: cobra.ExactArgs(1),
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().IntVar(&flagWalkX, "x", -1, "Start x (default: cell ahead of the head)")
	walkCmd.Flags().IntVar(&flagWalkY, "y", -1, "Start y (default: cell ahead of the head)")
	walkCmd.Flags().StringVar(&flagWalkDir, "dir", "", "Start heading: left, up, right or down")
	walkCmd.Flags().DurationVar(&flagWalkInterval, "interval", 250*time.Millisecond, "Autoplay step interval")
	walkCmd.Flags().BoolVar(&flagWalkBatch, "batch", false, "Run to the end and print the result without the TUI")
}

func runWalk(cmd *cobra.Command, args []string) error {
	st, err := loadState(args[0], "")
	if err != nil {
		return err
	}

	you := st.You()
	dir := game.Up
	if you != nil && len(you.Body) > 0 {
		dir = you.FacingDirection()
	}
	if flagWalkDir != "" {
		if dir, err = game.ParseDirection(flagWalkDir); err != nil {
			return err
		}
	}

	start := game.Point{X: flagWalkX, Y: flagWalkY}
	if flagWalkX < 0 || flagWalkY < 0 {
		if you == nil || len(you.Body) == 0 {
			return fmt.Errorf("no ego snake in snapshot, give --x and --y")
		}
		start = you.Head().Moved(dir)
	}

	w := analysis.NewWalk(st.Board, start, dir, walkOptions()...)
	styles := viewer.DefaultStyles()

	if flagWalkBatch {
		area := w.Perimeter()
		fmt.Fprint(cmd.OutOrStdout(), viewer.Walk(w, styles))
		fmt.Fprintf(cmd.OutOrStdout(), "area %d  loops %d  tripped %v\n", area, w.Loops(), w.Tripped())
		return nil
	}

	_, err = tea.NewProgram(viewer.NewStepper(w, styles, flagWalkInterval)).Run()
	return err
}
