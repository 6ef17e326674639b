package analysis

import (
	"github.com/charmbracelet/log"

	"github.com/rninformatics/battlesnake-utils/game"
	"github.com/rninformatics/battlesnake-utils/rules"
)

// Verdict is what the analysis knows about one candidate direction.
type Verdict struct {
	Direction game.Direction `json:"direction"`
	// Free is the target cell's state with tails treated as vacating.
	Free bool `json:"free"`
	// Legal means the target is free even with tails obstructing.
	Legal   bool `json:"legal"`
	DeadEnd bool `json:"dead_end"`
	// TChoice is evaluated after the hypothetical move.
	TChoice bool `json:"t_choice"`
	Walked  bool `json:"walked"`
	Area    int  `json:"area"`
	Tripped bool `json:"tripped"`
}

// Food is the nearest food as seen from the head.
type Food struct {
	Found     bool             `json:"found"`
	Direction []game.Direction `json:"direction,omitempty"`
	Distance  float64          `json:"distance,omitempty"`
}

// Report summarises the board around the ego snake for a move policy.
type Report struct {
	Turn     int            `json:"turn"`
	YouID    string         `json:"you_id"`
	Head     game.Point     `json:"head"`
	Facing   game.Direction `json:"facing"`
	TChoice  bool           `json:"t_choice"`
	Verdicts []Verdict      `json:"verdicts"`
	Food     Food           `json:"food"`
	Clear    Food           `json:"clear_food"`
}

// Verdict returns the entry for d.
func (r Report) Verdict(d game.Direction) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Direction == d {
			return v, true
		}
	}
	return Verdict{}, false
}

// Analyzer evaluates every direction for the ego snake of a state.
type Analyzer struct {
	Limits Limits
	// AlwaysWalk runs the perimeter walk for every legal direction instead
	// of only where the snake would face a t-choice.
	AlwaysWalk bool
	Logger     *log.Logger
}

// NewAnalyzer returns an Analyzer using DefaultLimits and the default logger.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Limits: DefaultLimits, Logger: log.Default()}
}

func (a *Analyzer) options() []Option {
	limits := a.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits
	}
	return []Option{WithLimits(limits), WithLogger(a.Logger)}
}

// Analyze builds the report. A state without an ego snake yields a report
// with no verdicts.
func (a *Analyzer) Analyze(state *game.State) Report {
	r := Report{Turn: state.Turn, YouID: state.YouID}
	you := state.You()
	if you == nil || len(you.Body) == 0 {
		return r
	}

	opts := a.options()
	board := state.Board
	head := you.Head()

	r.Head = head
	r.Facing = you.FacingDirection()
	r.TChoice = board.FacingTChoice(you)

	legal := make(map[game.Direction]bool, 4)
	for _, d := range rules.LegalMoves(state) {
		legal[d] = true
	}

	for _, d := range game.AllDirections {
		target := head.Moved(d)
		v := Verdict{
			Direction: d,
			Free:      board.IsFree(target, false),
			Legal:     legal[d],
		}
		v.DeadEnd = TowardsDeadEnd(board, you, d, opts...)

		if v.Legal {
			next := rules.NextState(state, d)
			if nextYou := next.You(); nextYou != nil {
				v.TChoice = next.Board.FacingTChoice(nextYou)
			}
			if v.TChoice || a.AlwaysWalk {
				w := NewWalk(board, target, d, opts...)
				v.Area = w.Perimeter()
				v.Walked = true
				v.Tripped = w.Tripped()
			}
		}
		r.Verdicts = append(r.Verdicts, v)
	}

	if dirs, dist, ok := state.ClosestFood(); ok {
		r.Food = Food{Found: true, Direction: dirs, Distance: dist}
	}
	if dirs, dist, ok := state.ClosestUnobstructedFood(); ok {
		r.Clear = Food{Found: true, Direction: dirs, Distance: dist}
	}
	return r
}
