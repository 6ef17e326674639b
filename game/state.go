package game

import (
	"github.com/charmbracelet/log"
)

// State is one turn of a game seen from the snake identified by YouID.
// It is designed to be cheap to clone for what-if exploration: clones never
// share mutable data with their source.
type State struct {
	Turn  int
	Board *Board
	YouID string
}

// NewDefaultState returns turn 0 on an empty 20x20 board holding a single
// freshly spawned snake of length 3 at (10,10).
func NewDefaultState() *State {
	spawn := Point{X: 10, Y: 10}
	you := Snake{
		ID:     "0",
		Name:   "snake1",
		Health: 100,
		Length: 3,
		Body:   []Point{spawn, spawn, spawn},
	}
	return &State{
		Board: NewBoard(20, 20, nil, nil, []Snake{you}),
		YouID: you.ID,
	}
}

// You returns the ego snake, or nil when it is not on the board.
func (s *State) You() *Snake {
	return s.Board.SnakeByID(s.YouID)
}

// SnakeByID returns the snake with the given id, or nil.
func (b *Board) SnakeByID(id string) *Snake {
	for i := range b.Snakes {
		if b.Snakes[i].ID == id {
			return &b.Snakes[i]
		}
	}
	return nil
}

// Clone performs a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{
		Turn:  s.Turn,
		Board: s.Board.Clone(),
		YouID: s.YouID,
	}
}

// CloneAs clones the state and switches the ego snake to youID. If no snake
// has that id the clone keeps the previous identity and ok is false.
func (s *State) CloneAs(youID string) (clone *State, ok bool) {
	clone = s.Clone()
	if clone.Board.SnakeByID(youID) == nil {
		log.Warn("clone: no snake with requested id, keeping identity", "id", youID, "you", clone.YouID)
		return clone, false
	}
	clone.YouID = youID
	return clone, true
}

// ClosestFood returns the direction(s) and distance from the ego head to the
// nearest food. ok is false when there is no food or no ego snake.
func (s *State) ClosestFood() (dirs []Direction, dist float64, ok bool) {
	return s.closestFood(func(Point, Point) bool { return true })
}

// ClosestUnobstructedFood is ClosestFood restricted to food whose bounding
// rectangle with the head is clear of obstructions and hazards.
func (s *State) ClosestUnobstructedFood() (dirs []Direction, dist float64, ok bool) {
	return s.closestFood(s.Board.ClearBetween)
}

func (s *State) closestFood(keep func(head, food Point) bool) ([]Direction, float64, bool) {
	you := s.You()
	if you == nil || len(you.Body) == 0 {
		return nil, 0, false
	}
	head := you.Head()

	found := false
	var best Point
	var bestDist float64
	for _, f := range s.Board.Food {
		if !keep(head, f) {
			continue
		}
		d := head.DistanceTo(f)
		if !found || d < bestDist {
			found, best, bestDist = true, f, d
		}
	}
	if !found {
		return nil, 0, false
	}
	return head.DirectionTo(best), bestDist, true
}
