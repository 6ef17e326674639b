// Package game models a Battlesnake board for move analysis.
//
// Coordinates follow Battlesnake conventions: (0,0) is bottom-left and up is +y.
// The Board keeps its food, hazards and snakes as the source of truth and
// projects them into an occupancy grid for point queries.
package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDirection is returned when a direction token is not one of
// left, up, right or down.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is an index into the cyclic order left, up, right, down.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// AllDirections lists the directions in their cyclic order.
var AllDirections = [4]Direction{Left, Up, Right, Down}

var directionNames = [4]string{"left", "up", "right", "down"}
var directionArrows = [4]string{"←", "↑", "→", "↓"}

// ParseDirection converts a token such as "left" into a Direction.
func ParseDirection(token string) (Direction, error) {
	for i, name := range directionNames {
		if name == token {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
}

func (d Direction) valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	if !d.valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Arrow returns a single-rune arrow for board overlays.
func (d Direction) Arrow() string {
	if !d.valid() {
		return "?"
	}
	return directionArrows[d]
}

// TurnLeft rotates 90° counter-clockwise.
func (d Direction) TurnLeft() Direction {
	return (d + 3) % 4
}

// TurnRight rotates 90° clockwise.
func (d Direction) TurnRight() Direction {
	return (d + 1) % 4
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Point is a board coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Moved returns p shifted by one cell in direction d.
// It panics on a Direction outside Left..Down; tokens should go through
// ParseDirection first.
func (p Point) Moved(d Direction) Point {
	switch d {
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	case Up:
		return Point{X: p.X, Y: p.Y + 1}
	case Down:
		return Point{X: p.X, Y: p.Y - 1}
	}
	panic(fmt.Sprintf("game: %v: %d", ErrInvalidDirection, int(d)))
}

// DistanceTo is the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return p.DistanceToXY(q.X, q.Y)
}

func (p Point) DistanceToXY(x, y int) float64 {
	dx := float64(x - p.X)
	dy := float64(y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo returns the directions leading from p towards q: at most one of
// left/right followed by at most one of up/down. It is empty when p == q.
func (p Point) DirectionTo(q Point) []Direction {
	var dirs []Direction
	if p.X < q.X {
		dirs = append(dirs, Right)
	} else if p.X > q.X {
		dirs = append(dirs, Left)
	}
	if p.Y < q.Y {
		dirs = append(dirs, Up)
	} else if p.Y > q.Y {
		dirs = append(dirs, Down)
	}
	return dirs
}
