package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

const leaderboardHTML = `<html><body>
<a href="/leaderboard/standard/alice/stats">alice</a>
<a href="/leaderboard/standard/bob/stats">bob</a>
<a href="/leaderboard/standard/alice/stats">alice again</a>
<a href="/leaderboard/standard">self</a>
</body></html>`

const (
	aliceHTML = `<a href="/game/aaaa-1111">g</a><a href="/game/bbbb-2222">g</a><a href="/game/aaaa-1111">dup</a>`
	bobHTML   = `<a href="https://play.battlesnake.com/game/bbbb-2222">g</a><a href="/game/cccc-3333">g</a>`
)

func newSite(t *testing.T) *Crawler {
	t.Helper()
	pages := map[string]string{
		"/leaderboard/standard":             leaderboardHTML,
		"/leaderboard/standard/alice/stats": aliceHTML,
		"/leaderboard/standard/bob/stats":   bobHTML,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RequestDelay = 0
	return NewCrawler(cfg, log.New(io.Discard))
}

func TestLeaderboardPlayers(t *testing.T) {
	c := newSite(t)
	players, err := c.LeaderboardPlayers(context.Background())
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(players) != 2 || players[0].Username != "alice" || players[1].Username != "bob" {
		t.Fatalf("players=%+v", players)
	}
	if players[0].StatsURL != c.StatsURL("alice") {
		t.Fatalf("stats url=%s want=%s", players[0].StatsURL, c.StatsURL("alice"))
	}
}

func TestPlayerGames(t *testing.T) {
	c := newSite(t)
	ids, err := c.PlayerGames(context.Background(), c.StatsURL("alice"))
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if len(ids) != 2 || ids[0] != "aaaa-1111" || ids[1] != "bbbb-2222" {
		t.Fatalf("ids=%v", ids)
	}
}

func TestDiscover_Dedupes(t *testing.T) {
	c := newSite(t)
	ids, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{"aaaa-1111", "bbbb-2222", "cccc-3333"}
	if len(ids) != len(want) {
		t.Fatalf("ids=%v want=%v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids=%v want=%v", ids, want)
		}
	}
}

func TestDiscover_MaxPlayers(t *testing.T) {
	c := newSite(t)
	c.config.MaxPlayers = 1
	ids, err := c.Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids=%v want alice's two games", ids)
	}
}

func TestPlayerGames_NotFound(t *testing.T) {
	c := newSite(t)
	if _, err := c.PlayerGames(context.Background(), c.StatsURL("nobody")); err == nil {
		t.Fatalf("expected status error")
	}
}
