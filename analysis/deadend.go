package analysis

import (
	"github.com/rninformatics/battlesnake-utils/game"
)

// TowardsDeadEnd probes forward from the snake's head in direction d and
// reports whether that direction leads into a dead end.
//
// At each scanned cell the cell ahead (in d) and the two cells beside it are
// checked, with tails treated as free: none free is a dead end, two or more
// free is an escape, exactly one free advances the scan along d. The scan
// also stops, without a verdict of dead end, when it advances into an
// obstruction or off the board. It is a dead end when not even the first
// cell could be scanned: the cell next to the head must itself be free.
func TowardsDeadEnd(board *game.Board, snake *game.Snake, d game.Direction, opts ...Option) bool {
	logger := buildOptions(opts).logger
	head := snake.Head()

	ahead := d
	sideA, sideB := d.TurnLeft(), d.TurnRight()

	scanned := false
	deadEnd := false
	for pos := head.Moved(d); board.InBounds(pos) && board.IsFree(pos, false); pos = pos.Moved(d) {
		scanned = true

		free := 0
		for _, dir := range [3]game.Direction{ahead, sideA, sideB} {
			if board.IsFree(pos.Moved(dir), false) {
				free++
			}
		}
		logger.Debug("dead end scan", "pos", pos, "dir", d, "free", free)

		if free == 0 {
			deadEnd = true
			break
		}
		if free >= 2 {
			break
		}
	}

	if !scanned {
		deadEnd = true
	}
	logger.Debug("dead end verdict", "head", head, "dir", d, "dead_end", deadEnd)
	return deadEnd
}

// DeadEndFor runs TowardsDeadEnd for the state's ego snake. Without an ego
// snake every direction is a dead end.
func DeadEndFor(state *game.State, d game.Direction, opts ...Option) bool {
	you := state.You()
	if you == nil || len(you.Body) == 0 {
		return true
	}
	return TowardsDeadEnd(state.Board, you, d, opts...)
}
