// Package rules applies the parts of the Battlesnake rules the analysis needs:
// which moves are safe this turn, and what the board looks like after "you"
// moves. Other snakes are left where they are.
package rules

import (
	"github.com/rninformatics/battlesnake-utils/game"
)

// LegalMoves returns the directions the ego snake can move this turn without
// hitting a wall or any body, tails included.
func LegalMoves(state *game.State) []game.Direction {
	you := state.You()
	if you == nil || you.Health <= 0 || len(you.Body) == 0 {
		return []game.Direction{}
	}

	head := you.Head()
	moves := []game.Direction{}
	for _, d := range game.AllDirections {
		if state.Board.IsFree(head.Moved(d), true) {
			moves = append(moves, d)
		}
	}
	return moves
}

// NextState returns the state after the ego snake moves one step in d.
// The input is not modified. Eating food restores health and grows the
// snake by keeping its tail; otherwise health drops by one and the tail
// advances. Collisions are not resolved.
func NextState(state *game.State, d game.Direction) *game.State {
	next := state.Clone()
	next.Turn++

	you := next.You()
	if you == nil || you.Health <= 0 || len(you.Body) == 0 {
		return next
	}

	newHead := you.Head().Moved(d)

	ateFood := false
	board := next.Board
	for i, f := range board.Food {
		if f == newHead {
			ateFood = true
			board.Food = append(board.Food[:i], board.Food[i+1:]...)
			break
		}
	}

	newBody := make([]game.Point, 0, len(you.Body)+1)
	newBody = append(newBody, newHead)
	newBody = append(newBody, you.Body...)
	if ateFood {
		you.Health = 100
		you.Length++
	} else {
		you.Health--
		newBody = newBody[:len(newBody)-1]
	}
	you.Body = newBody

	board.Rebuild()
	return next
}
