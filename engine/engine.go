// Package engine downloads the frames of a finished game from the Battlesnake
// engine's websocket event stream.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/rninformatics/battlesnake-utils/game"
)

// Config holds client configuration.
type Config struct {
	URL            string        `yaml:"url"` // WebSocket URL template, %s is the game id
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
}

// DefaultConfig returns the public engine endpoint.
func DefaultConfig() Config {
	return Config{
		URL:            "wss://engine.battlesnake.com/games/%s/events",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    30 * time.Second,
	}
}

// ErrNoFrames is returned when the stream ended before any frame arrived.
var ErrNoFrames = errors.New("no frames received")

// Event is one message of the stream.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// GameInfo from the "game_info" event.
type GameInfo struct {
	Game    GameDetails `json:"game"`
	Ruleset RulesetInfo `json:"ruleset"`
}

type GameDetails struct {
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Timeout int    `json:"timeout"`
}

type RulesetInfo struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Settings json.RawMessage `json:"settings"`
}

// Frame from "frame" events.
type Frame struct {
	Turn    int         `json:"turn"`
	Snakes  []SnakeData `json:"snakes"`
	Food    []Coord     `json:"food"`
	Hazards []Coord     `json:"hazards"`
}

type SnakeData struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Health int     `json:"health"`
	Body   []Coord `json:"body"`
	Author string  `json:"author,omitempty"`
	Death  *Death  `json:"death,omitempty"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Death struct {
	Cause string `json:"cause"`
	Turn  int    `json:"turn"`
}

// Alive reports whether the snake is still on the board in this frame.
func (s SnakeData) Alive() bool {
	return s.Death == nil && s.Health > 0 && len(s.Body) > 0
}

// State converts the frame to a game.State seen from youID. Dead snakes are
// left off the board.
func (f *Frame) State(width, height int, youID string) *game.State {
	var snakes []game.Snake
	for _, s := range f.Snakes {
		if !s.Alive() {
			continue
		}
		snakes = append(snakes, game.Snake{
			ID:     s.ID,
			Name:   s.Name,
			Health: s.Health,
			Length: len(s.Body),
			Body:   points(s.Body),
		})
	}
	return &game.State{
		Turn:  f.Turn,
		Board: game.NewBoard(width, height, points(f.Food), points(f.Hazards), snakes),
		YouID: youID,
	}
}

func points(cs []Coord) []game.Point {
	if len(cs) == 0 {
		return nil
	}
	ps := make([]game.Point, len(cs))
	for i, c := range cs {
		ps[i] = game.Point{X: c.X, Y: c.Y}
	}
	return ps
}

// Winner names the single surviving snake of the frame, or "draw".
func (f *Frame) Winner() string {
	var alive []SnakeData
	for _, s := range f.Snakes {
		if s.Alive() {
			alive = append(alive, s)
		}
	}
	if len(alive) == 1 {
		return alive[0].Name
	}
	return "draw"
}

// Client reads game event streams.
type Client struct {
	config Config
	logger *log.Logger
}

func NewClient(config Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{config: config, logger: logger}
}

// FetchFrames connects to the stream of gameID and collects every frame
// until the game ends or the server closes the connection. A read error
// after at least one frame ends the download with what was received.
func (c *Client) FetchFrames(ctx context.Context, gameID string) (GameInfo, []Frame, error) {
	url := fmt.Sprintf(c.config.URL, gameID)

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.ConnectTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return GameInfo{}, nil, fmt.Errorf("connect %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var (
		info   GameInfo
		frames []Frame
	)
read:
	for {
		if c.config.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return info, frames, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || len(frames) > 0 {
				break
			}
			return info, nil, fmt.Errorf("read %s: %w", gameID, err)
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			c.logger.Warn("failed to parse event", "game", gameID, "err", err)
			continue
		}

		switch event.Type {
		case "game_info":
			if err := json.Unmarshal(event.Data, &info); err != nil {
				c.logger.Warn("failed to parse game_info", "game", gameID, "err", err)
			}
		case "frame":
			var frame Frame
			if err := json.Unmarshal(event.Data, &frame); err != nil {
				c.logger.Warn("failed to parse frame", "game", gameID, "err", err)
				continue
			}
			frames = append(frames, frame)
		case "game_end":
			break read
		}
	}

	if len(frames) == 0 {
		return info, nil, fmt.Errorf("game %s: %w", gameID, ErrNoFrames)
	}
	c.logger.Debug("downloaded game", "game", gameID, "frames", len(frames), "winner", frames[len(frames)-1].Winner())
	return info, frames, nil
}
