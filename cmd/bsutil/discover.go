package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rninformatics/battlesnake-utils/discovery"
)

var (
	flagDiscoverArena      string
	flagDiscoverMaxPlayers int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List game ids from the leaderboard",
	Long: `Scrape the leaderboard of an arena and print the game ids linked from
the top players' stats pages, one per line, ready for "bsutil replay".

Examples:
  bsutil discover
  bsutil discover --arena standard-duels --max-players 3`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&flagDiscoverArena, "arena", "", "Leaderboard arena (default from config)")
	discoverCmd.Flags().IntVar(&flagDiscoverMaxPlayers, "max-players", -1, "Players to check (default from config, 0 = all)")
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	dcfg := cfg.Discovery
	if flagDiscoverArena != "" {
		dcfg.Arena = flagDiscoverArena
	}
	if flagDiscoverMaxPlayers >= 0 {
		dcfg.MaxPlayers = flagDiscoverMaxPlayers
	}

	ids, err := discovery.NewCrawler(dcfg, logger).Discover(cmd.Context())
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return err
}
