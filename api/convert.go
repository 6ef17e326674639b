package api

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rninformatics/battlesnake-utils/game"
)

// Decode reads one webhook payload. The turn, board and you keys must be
// present; game is optional.
func Decode(r io.Reader) (*GameRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode game request: %w", err)
	}
	for _, key := range []string{"turn", "board", "you"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("decode game request: %w: %s", ErrMissingField, key)
		}
	}

	var req GameRequest
	if g, ok := raw["game"]; ok {
		if err := json.Unmarshal(g, &req.Game); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
	}
	if err := json.Unmarshal(raw["turn"], &req.Turn); err != nil {
		return nil, fmt.Errorf("decode turn: %w", err)
	}
	if err := json.Unmarshal(raw["board"], &req.Board); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if err := json.Unmarshal(raw["you"], &req.You); err != nil {
		return nil, fmt.Errorf("decode you: %w", err)
	}
	return &req, nil
}

// DecodeState is Decode followed by State.
func DecodeState(r io.Reader) (*game.State, error) {
	req, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return req.State()
}

// State converts the payload into a game.State with a built occupancy grid.
// The ego snake is identified by You.ID; it is expected to be one of the
// board's snakes.
func (req *GameRequest) State() (*game.State, error) {
	if req.Board.Width < 0 || req.Board.Height < 0 {
		return nil, fmt.Errorf("board %dx%d: %w", req.Board.Width, req.Board.Height, ErrInvalidSnapshot)
	}

	snakes := make([]game.Snake, 0, len(req.Board.Snakes))
	for _, s := range req.Board.Snakes {
		if len(s.Body) == 0 {
			return nil, fmt.Errorf("snake %q has no body: %w", s.ID, ErrInvalidSnapshot)
		}
		snakes = append(snakes, toSnake(s))
	}

	return &game.State{
		Turn:  req.Turn,
		Board: game.NewBoard(req.Board.Width, req.Board.Height, toPoints(req.Board.Food), toPoints(req.Board.Hazards), snakes),
		YouID: req.You.ID,
	}, nil
}

// FromState builds a payload for st, filling the game section with a solo
// ruleset so it can be replayed against a snake server.
func FromState(st *game.State) GameRequest {
	req := GameRequest{
		Game: defaultGame(),
		Turn: st.Turn,
		Board: Board{
			Height:  st.Board.Height,
			Width:   st.Board.Width,
			Food:    toCoords(st.Board.Food),
			Hazards: toCoords(st.Board.Hazards),
			Snakes:  make([]Battlesnake, 0, len(st.Board.Snakes)),
		},
	}
	for i := range st.Board.Snakes {
		req.Board.Snakes = append(req.Board.Snakes, fromSnake(&st.Board.Snakes[i]))
	}
	if you := st.You(); you != nil {
		req.You = fromSnake(you)
	} else {
		req.You = Battlesnake{ID: st.YouID, Latency: "0", Body: []Coord{}}
	}
	return req
}

func defaultGame() Game {
	return Game{
		ID: "8ca0476c-5c80-4f92-9117-ff914e51f10a",
		Ruleset: Ruleset{
			Name:    "solo",
			Version: "cli",
			Settings: RulesetSettings{
				FoodSpawnChance:     15,
				MinimumFood:         1,
				HazardDamagePerTurn: 14,
				Royale:              RoyaleSettings{ShrinkEveryNTurns: 25},
			},
		},
		Map:     "empty map",
		Timeout: 500,
	}
}

func toSnake(s Battlesnake) game.Snake {
	length := s.Length
	if length == 0 {
		length = len(s.Body)
	}
	return game.Snake{
		ID:     s.ID,
		Name:   s.Name,
		Health: s.Health,
		Length: length,
		Body:   toPoints(s.Body),
	}
}

func fromSnake(s *game.Snake) Battlesnake {
	out := Battlesnake{
		ID:      s.ID,
		Name:    s.Name,
		Health:  s.Health,
		Body:    toCoords(s.Body),
		Latency: "0",
		Length:  s.Length,
	}
	if len(s.Body) > 0 {
		head := s.Head()
		out.Head = Coord{X: head.X, Y: head.Y}
	}
	return out
}

func toPoints(cs []Coord) []game.Point {
	if len(cs) == 0 {
		return nil
	}
	ps := make([]game.Point, len(cs))
	for i, c := range cs {
		ps[i] = game.Point{X: c.X, Y: c.Y}
	}
	return ps
}

func toCoords(ps []game.Point) []Coord {
	cs := make([]Coord, len(ps))
	for i, p := range ps {
		cs[i] = Coord{X: p.X, Y: p.Y}
	}
	return cs
}
