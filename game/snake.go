package game

// Snake is one snake on the board. Body is head first, tail last and must
// not be empty. A freshly spawned snake has all of its segments stacked on
// one cell.
type Snake struct {
	ID     string
	Name   string
	Health int
	Length int
	Body   []Point
}

func (s *Snake) Head() Point {
	return s.Body[0]
}

func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// FacingDirection is the direction from the neck to the head.
// A snake whose neck is on its head (spawn state) faces Up.
func (s *Snake) FacingDirection() Direction {
	if len(s.Body) < 2 || s.Body[0] == s.Body[1] {
		return Up
	}
	return s.Body[1].DirectionTo(s.Body[0])[0]
}

func (s *Snake) PosAhead() Point {
	return s.Head().Moved(s.FacingDirection())
}

func (s *Snake) PosToLeft() Point {
	return s.Head().Moved(s.FacingDirection().TurnLeft())
}

func (s *Snake) PosToRight() Point {
	return s.Head().Moved(s.FacingDirection().TurnRight())
}

// PosAheadToLeft is one cell forward then one cell to the left.
func (s *Snake) PosAheadToLeft() Point {
	facing := s.FacingDirection()
	return s.Head().Moved(facing).Moved(facing.TurnLeft())
}

// PosAheadToRight is one cell forward then one cell to the right.
func (s *Snake) PosAheadToRight() Point {
	facing := s.FacingDirection()
	return s.Head().Moved(facing).Moved(facing.TurnRight())
}

// Clone performs a deep copy of the snake.
func (s *Snake) Clone() *Snake {
	out := *s
	if len(s.Body) > 0 {
		out.Body = make([]Point, len(s.Body))
		copy(out.Body, s.Body)
	}
	return &out
}
