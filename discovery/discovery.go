// Package discovery finds game ids on the Battlesnake leaderboard pages.
package discovery

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

// Config holds discovery configuration.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	Arena        string        `yaml:"arena"`         // leaderboard arena, e.g. standard or standard-duels
	RequestDelay time.Duration `yaml:"request_delay"` // delay between HTTP requests to be polite
	MaxPlayers   int           `yaml:"max_players"`   // players checked per leaderboard (0 = unlimited)
}

// DefaultConfig returns the public site and the standard arena.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://play.battlesnake.com",
		Arena:        "standard",
		RequestDelay: 500 * time.Millisecond,
		MaxPlayers:   10,
	}
}

var (
	gameIDRe = regexp.MustCompile(`/game/([a-f0-9-]+)`)
	playerRe = regexp.MustCompile(`/leaderboard/[^/]+/([^/]+)/stats`)
)

// Player is one leaderboard entry.
type Player struct {
	Username string
	StatsURL string
}

// Crawler scrapes leaderboard and player stats pages.
type Crawler struct {
	config Config
	client *http.Client
	logger *log.Logger
}

func NewCrawler(config Config, logger *log.Logger) *Crawler {
	if logger == nil {
		logger = log.Default()
	}
	return &Crawler{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Discover walks the arena's leaderboard and returns the distinct game ids
// found on the players' stats pages, in discovery order. Players whose page
// fails are logged and skipped.
func (c *Crawler) Discover(ctx context.Context) ([]string, error) {
	players, err := c.LeaderboardPlayers(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Info("leaderboard scraped", "arena", c.config.Arena, "players", len(players))

	if c.config.MaxPlayers > 0 && len(players) > c.config.MaxPlayers {
		players = players[:c.config.MaxPlayers]
	}

	var ids []string
	seen := make(map[string]bool)
	for i, p := range players {
		if i > 0 && c.config.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				return ids, ctx.Err()
			case <-time.After(c.config.RequestDelay):
			}
		}

		games, err := c.PlayerGames(ctx, p.StatsURL)
		if err != nil {
			c.logger.Warn("player games", "player", p.Username, "err", err)
			continue
		}
		for _, id := range games {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// LeaderboardPlayers lists the players linked from the arena's leaderboard.
func (c *Crawler) LeaderboardPlayers(ctx context.Context) ([]Player, error) {
	doc, err := c.fetch(ctx, c.config.BaseURL+"/leaderboard/"+c.config.Arena)
	if err != nil {
		return nil, err
	}

	var players []Player
	seen := make(map[string]bool)
	doc.Find("a[href*='/leaderboard/']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := playerRe.FindStringSubmatch(href)
		if len(m) < 2 || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		players = append(players, Player{Username: m[1], StatsURL: c.absolute(href)})
	})
	return players, nil
}

// PlayerGames returns the game ids linked from a player's stats page.
func (c *Crawler) PlayerGames(ctx context.Context, statsURL string) ([]string, error) {
	doc, err := c.fetch(ctx, statsURL)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]bool)
	doc.Find("a[href*='/game/']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := gameIDRe.FindStringSubmatch(href)
		if len(m) < 2 || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	})
	return ids, nil
}

// StatsURL is the stats page of username in the configured arena.
func (c *Crawler) StatsURL(username string) string {
	return fmt.Sprintf("%s/leaderboard/%s/%s/stats", c.config.BaseURL, c.config.Arena, username)
}

func (c *Crawler) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.config.BaseURL + href
}

func (c *Crawler) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "bsutil/1.0 (game-analysis)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status code: %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
