package game

// Cell is one entry of the occupancy grid.
type Cell int

const (
	CellEmpty Cell = iota
	CellFood
	CellHazard
	CellHead
	CellTail
	// CellCrumb marks debug overlays only; queries treat it as any other marker.
	CellCrumb

	cellBody // first snake-body marker, BodyCell(i) = cellBody + i
)

// BodyCell is the marker for the body of the i-th snake on the board.
func BodyCell(i int) Cell {
	return cellBody + Cell(i)
}

// SnakeIndex reports which snake a body marker belongs to.
func (c Cell) SnakeIndex() (int, bool) {
	if c < cellBody {
		return 0, false
	}
	return int(c - cellBody), true
}

// Rune is the character used when rendering the grid.
func (c Cell) Rune() rune {
	switch c {
	case CellEmpty:
		return ' '
	case CellFood:
		return 'f'
	case CellHazard:
		return '.'
	case CellHead:
		return 'H'
	case CellTail:
		return 'T'
	case CellCrumb:
		return ';'
	}
	i, _ := c.SnakeIndex()
	return rune('0' + i%10)
}

// Board holds the entities of one turn plus an occupancy grid derived from
// them. Food, Hazards and Snakes are authoritative; after editing them
// directly call Rebuild before trusting any query.
type Board struct {
	Width   int
	Height  int
	Food    []Point
	Hazards []Point
	Snakes  []Snake
	Crumbs  []Point

	grid []Cell
}

// NewBoard builds a board and its occupancy grid.
func NewBoard(width, height int, food, hazards []Point, snakes []Snake) *Board {
	b := &Board{
		Width:   width,
		Height:  height,
		Food:    food,
		Hazards: hazards,
		Snakes:  snakes,
	}
	b.Rebuild()
	return b
}

// NewEmptyBoard returns a board of the given size with nothing on it.
func NewEmptyBoard(width, height int) *Board {
	return NewBoard(width, height, nil, nil, nil)
}

// Rebuild recomputes the occupancy grid. Later entities overwrite earlier
// ones: food, hazards, then for each snake its body, head and tail, then crumbs.
func (b *Board) Rebuild() {
	n := b.Width * b.Height
	if n < 0 {
		n = 0
	}
	if cap(b.grid) >= n {
		b.grid = b.grid[:n]
		clear(b.grid)
	} else {
		b.grid = make([]Cell, n)
	}

	for _, p := range b.Food {
		b.set(p, CellFood)
	}
	for _, p := range b.Hazards {
		b.set(p, CellHazard)
	}
	for i := range b.Snakes {
		s := &b.Snakes[i]
		if len(s.Body) == 0 {
			continue
		}
		for _, p := range s.Body {
			b.set(p, BodyCell(i))
		}
		b.set(s.Head(), CellHead)
		b.set(s.Tail(), CellTail)
	}
	for _, p := range b.Crumbs {
		b.set(p, CellCrumb)
	}
}

func (b *Board) set(p Point, c Cell) {
	if b.InBounds(p) {
		b.grid[p.Y*b.Width+p.X] = c
	}
}

func (b *Board) AddFood(p Point) {
	b.Food = append(b.Food, p)
	b.Rebuild()
}

func (b *Board) AddHazard(p Point) {
	b.Hazards = append(b.Hazards, p)
	b.Rebuild()
}

func (b *Board) AddSnake(s Snake) {
	b.Snakes = append(b.Snakes, s)
	b.Rebuild()
}

// InBounds reports whether p lies on [0,Width) x [0,Height).
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Cell returns the grid marker at p, or CellEmpty off the board.
func (b *Board) Cell(p Point) Cell {
	if !b.InBounds(p) {
		return CellEmpty
	}
	return b.grid[p.Y*b.Width+p.X]
}

// SetCell writes a marker directly into the grid. The next Rebuild discards it.
func (b *Board) SetCell(p Point, c Cell) {
	b.set(p, c)
}

// IsFree reports whether a snake could move onto p. Off-board cells are never
// free. Empty, food and hazard cells are free. A tail is free unless
// tailsAreObstructions is set: it normally moves away next turn, so the
// optimistic mode suits path analysis and the conservative one this turn's
// safety.
func (b *Board) IsFree(p Point, tailsAreObstructions bool) bool {
	if !b.InBounds(p) {
		return false
	}
	switch b.grid[p.Y*b.Width+p.X] {
	case CellEmpty, CellFood, CellHazard:
		return true
	case CellTail:
		return !tailsAreObstructions
	}
	return false
}

// FreePositionsAt returns the run of free cells (tails obstruct) starting one
// step from p in direction d, in travel order.
func (b *Board) FreePositionsAt(p Point, d Direction) []Point {
	var free []Point
	for q := p.Moved(d); b.IsFree(q, true); q = q.Moved(d) {
		free = append(free, q)
	}
	return free
}

// UnobstructedBetween reports whether every cell of the rectangle spanned by
// p1 and p2, other than the two points themselves, is free (tails do not
// obstruct). This is a coarse region test, not line of sight, and costs
// |dx|*|dy|.
func (b *Board) UnobstructedBetween(p1, p2 Point) bool {
	return b.allBetween(p1, p2, func(p Point) bool {
		return b.IsFree(p, false)
	})
}

// ClearBetween is UnobstructedBetween that also refuses hazard cells.
func (b *Board) ClearBetween(p1, p2 Point) bool {
	return b.allBetween(p1, p2, func(p Point) bool {
		return b.IsFree(p, false) && b.Cell(p) != CellHazard
	})
}

func (b *Board) allBetween(p1, p2 Point, ok func(Point) bool) bool {
	x1, x2 := min(p1.X, p2.X), max(p1.X, p2.X)
	y1, y2 := min(p1.Y, p2.Y), max(p1.Y, p2.Y)
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			p := Point{X: x, Y: y}
			if p == p1 || p == p2 {
				continue
			}
			if !ok(p) {
				return false
			}
		}
	}
	return true
}

// FacingTChoice reports whether s, continuing in its facing direction, is at
// a branch point worth a deeper look: blocked ahead with both sides open, or
// either forward diagonal obstructed.
// TODO: only square t-junctions are detected; wider openings are missed.
func (b *Board) FacingTChoice(s *Snake) bool {
	aheadFree := b.IsFree(s.PosAhead(), false)
	leftFree := b.IsFree(s.PosToLeft(), false)
	rightFree := b.IsFree(s.PosToRight(), false)
	if leftFree && rightFree && !aheadFree {
		return true
	}
	return !b.IsFree(s.PosAheadToLeft(), false) || !b.IsFree(s.PosAheadToRight(), false)
}

// Clone performs a deep copy of the board, grid included.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{
		Width:   b.Width,
		Height:  b.Height,
		Food:    clonePoints(b.Food),
		Hazards: clonePoints(b.Hazards),
		Crumbs:  clonePoints(b.Crumbs),
		grid:    make([]Cell, len(b.grid)),
	}
	copy(out.grid, b.grid)
	if len(b.Snakes) > 0 {
		out.Snakes = make([]Snake, len(b.Snakes))
		for i := range b.Snakes {
			out.Snakes[i] = *b.Snakes[i].Clone()
		}
	}
	return out
}

func clonePoints(ps []Point) []Point {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Point, len(ps))
	copy(out, ps)
	return out
}
