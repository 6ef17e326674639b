package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/discovery"
	"github.com/rninformatics/battlesnake-utils/engine"
	"github.com/rninformatics/battlesnake-utils/store"
)

var (
	flagReplayYou    string
	flagReplayOut    string
	flagReplayPlayer string
	flagReplayLimit  int
	flagReplayAgain  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [game-id...]",
	Short: "Analyze every turn of finished games",
	Long: `Download finished games from the Battlesnake engine and analyze every
turn, writing one parquet row per (game, turn, snake) into --out.

Without --you every living snake is analyzed on every turn. With --player
the games are taken from that player's leaderboard stats page. Games already
recorded in --out for the same --you (or for every snake) are skipped unless
--again is given.

Examples:
  bsutil replay 8ca0476c-5c80-4f92-9117-ff914e51f10a
  bsutil replay 8ca0476c-5c80-4f92-9117-ff914e51f10a --you gs_abc --out data/replays
  bsutil replay --player coreyja --limit 5`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayYou, "you", "", "Snake id to analyze (default: every snake)")
	replayCmd.Flags().StringVar(&flagReplayOut, "out", "", "Output directory (default: record.out_dir from config)")
	replayCmd.Flags().StringVar(&flagReplayPlayer, "player", "", "Replay games from this player's stats page")
	replayCmd.Flags().IntVar(&flagReplayLimit, "limit", 0, "Replay at most this many games (0 = all)")
	replayCmd.Flags().BoolVar(&flagReplayAgain, "again", false, "Replay games already recorded in --out")
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameIDs := args
	if flagReplayPlayer != "" {
		crawler := discovery.NewCrawler(cfg.Discovery, logger)
		ids, err := crawler.PlayerGames(ctx, crawler.StatsURL(flagReplayPlayer))
		if err != nil {
			return err
		}
		gameIDs = append(gameIDs, ids...)
	}

	outDir := flagReplayOut
	if outDir == "" {
		outDir = cfg.Record.OutDir
	}
	replayed, err := store.OpenReplayedLog(filepath.Join(outDir, "replayed_games.log"))
	if err != nil {
		return err
	}
	defer replayed.Close()

	if !flagReplayAgain {
		pending := replayed.Pending(gameIDs, flagReplayYou)
		if skipped := len(gameIDs) - len(pending); skipped > 0 {
			logger.Info("skipping replayed games", "count", skipped, "you", flagReplayYou)
		}
		gameIDs = pending
	}
	if flagReplayLimit > 0 && len(gameIDs) > flagReplayLimit {
		gameIDs = gameIDs[:flagReplayLimit]
	}
	if len(gameIDs) == 0 {
		return fmt.Errorf("no games to replay")
	}

	writer, err := store.NewBatchWriter(outDir)
	if err != nil {
		return err
	}
	defer writer.Abort()

	client := engine.NewClient(cfg.Engine, logger)
	for _, id := range gameIDs {
		rows, err := replayGame(ctx, client, id)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("replay failed", "game", id, "err", err)
			continue
		}
		if err := writer.WriteGame(id, rows); err != nil {
			return err
		}
		logger.Info("replayed", "game", id, "rows", len(rows))
	}

	batch, err := writer.Finalize()
	if err != nil {
		return err
	}
	if batch.Path == "" {
		return fmt.Errorf("nothing written")
	}
	if err := replayed.Record(batch.GameIDs, flagReplayYou); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows from %d games\n", batch.Path, batch.Rows, len(batch.GameIDs))
	return ctx.Err()
}

func replayGame(ctx context.Context, client *engine.Client, gameID string) ([]store.AnalysisRow, error) {
	info, frames, err := client.FetchFrames(ctx, gameID)
	if err != nil {
		return nil, err
	}

	width, height := info.Game.Width, info.Game.Height
	if width == 0 || height == 0 {
		width, height = 11, 11
	}

	analyzer := newAnalyzer(false)
	var rows []store.AnalysisRow
	for i := range frames {
		frame := &frames[i]
		for _, s := range frame.Snakes {
			if !s.Alive() || (flagReplayYou != "" && s.ID != flagReplayYou) {
				continue
			}
			st := frame.State(width, height, s.ID)
			rows = append(rows, store.RowFromReport(gameID, "replay", width, height, analyzer.Analyze(st)))
		}
	}
	return rows, nil
}
