// Package analysis estimates how much room a snake has in a given direction.
//
// Walk follows the boundary of a free region clockwise, keeping the
// obstruction on its left, and sweeps the free run to its right on every
// step. The swept set approximates the region's area; it is cheap but can
// miscount irregular or multiply connected regions. The dead-end scanner is
// a cheaper single-direction probe.
package analysis

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/rninformatics/battlesnake-utils/game"
)

// Limits bound a Walk so it always terminates.
type Limits struct {
	// MaxLoops caps the iterations of the main traversal.
	MaxLoops int `yaml:"max_loops"`
	// MaxTurns caps each search for an unobstructed heading.
	MaxTurns int `yaml:"max_turns"`
	// VisitFactor caps the visited set at VisitFactor*width*height cells.
	VisitFactor int `yaml:"visit_factor"`
}

// DefaultLimits are the bounds used unless configured otherwise.
var DefaultLimits = Limits{MaxLoops: 40, MaxTurns: 5, VisitFactor: 4}

type Option func(*options)

type options struct {
	limits Limits
	logger *log.Logger
}

func WithLimits(l Limits) Option {
	return func(o *options) { o.limits = l }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{limits: DefaultLimits, logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Walk is the traversal state over one board. Tails always obstruct.
type Walk struct {
	board   *game.Board
	pos     game.Point
	dir     game.Direction
	visited map[game.Point]struct{}

	started  bool
	start    game.Point
	startDir game.Direction

	loops   int
	done    bool
	tripped bool

	opts options
}

// NewWalk places a walker on board at pos heading dir.
func NewWalk(board *game.Board, pos game.Point, dir game.Direction, opts ...Option) *Walk {
	return &Walk{
		board:   board,
		pos:     pos,
		dir:     dir,
		visited: map[game.Point]struct{}{pos: {}},
		opts:    buildOptions(opts),
	}
}

func (w *Walk) Pos() game.Point           { return w.pos }
func (w *Walk) Direction() game.Direction { return w.dir }
func (w *Walk) Board() *game.Board        { return w.board }
func (w *Walk) Done() bool                { return w.done }
func (w *Walk) Loops() int                { return w.loops }

// Tripped reports whether a safety bound ended the traversal. The area of a
// tripped walk is a lower-confidence estimate.
func (w *Walk) Tripped() bool { return w.tripped }

// Sentinel is the position and heading that close the loop, once Begin ran.
func (w *Walk) Sentinel() (game.Point, game.Direction, bool) {
	return w.start, w.startDir, w.started
}

// Area is the number of cells visited so far.
func (w *Walk) Area() int {
	return len(w.visited)
}

// Visited reports whether p has been swept.
func (w *Walk) Visited(p game.Point) bool {
	_, ok := w.visited[p]
	return ok
}

// Crumbs lists the visited cells bottom row first, left to right.
func (w *Walk) Crumbs() []game.Point {
	out := make([]game.Point, 0, len(w.visited))
	for p := range w.visited {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b game.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

func (w *Walk) free(p game.Point) bool {
	return w.board.IsFree(p, true)
}

func (w *Walk) TurnLeft()  { w.dir = w.dir.TurnLeft() }
func (w *Walk) TurnRight() { w.dir = w.dir.TurnRight() }

func (w *Walk) FreeAhead() bool {
	return w.free(w.pos.Moved(w.dir))
}

func (w *Walk) FreeOnLeft() bool {
	return w.free(w.pos.Moved(w.dir.TurnLeft()))
}

func (w *Walk) FreeOnRight() bool {
	return w.free(w.pos.Moved(w.dir.TurnRight()))
}

// MarkRight adds the free run to the walker's right to the visited set and
// returns it.
func (w *Walk) MarkRight() []game.Point {
	run := w.board.FreePositionsAt(w.pos, w.dir.TurnRight())
	for _, p := range run {
		w.visited[p] = struct{}{}
	}
	return run
}

// MoveForward steps one cell, marking the new cell and the run to its right.
func (w *Walk) MoveForward() {
	w.pos = w.pos.Moved(w.dir)
	w.visited[w.pos] = struct{}{}
	w.MarkRight()
}

// TurnRightUntilFree rotates clockwise until the cell ahead is free, giving
// up after MaxTurns rotations. It returns the resulting heading.
func (w *Walk) TurnRightUntilFree() game.Direction {
	for n := 0; !w.FreeAhead() && n < w.opts.limits.MaxTurns; n++ {
		w.TurnRight()
	}
	return w.dir
}

// WalkUntilObstructed moves forward while the cell ahead is free.
func (w *Walk) WalkUntilObstructed() game.Point {
	for w.FreeAhead() {
		w.MoveForward()
	}
	return w.pos
}

// WalkUntilObstructedOrFreeOnLeft hugs the wall: it moves forward while the
// cell ahead is free and the cell to the left is not. It returns true as
// soon as the walker stands on the sentinel.
func (w *Walk) WalkUntilObstructedOrFreeOnLeft() bool {
	for w.FreeAhead() && !w.FreeOnLeft() {
		w.MoveForward()
		if w.atSentinel() {
			return true
		}
	}
	return false
}

func (w *Walk) atSentinel() bool {
	return w.started && w.pos == w.start && w.dir == w.startDir
}

// Begin runs to the nearest obstruction, orients so the obstruction is on
// the left and records the sentinel. The visited set restarts from there.
func (w *Walk) Begin() {
	if w.started {
		return
	}
	w.WalkUntilObstructed()
	w.TurnRightUntilFree()

	if !w.board.IsFree(w.pos, false) {
		w.opts.logger.Debug("walk: moving off starting obstruction", "pos", w.pos, "dir", w.dir)
		w.MoveForward()
	}

	w.started = true
	w.start = w.pos
	w.startDir = w.dir
	w.visited = map[game.Point]struct{}{w.pos: {}}
}

// Step runs one iteration of the boundary traversal and reports whether
// another is needed. It calls Begin first if that has not happened yet.
func (w *Walk) Step() bool {
	if w.done {
		return false
	}
	w.Begin()

	if w.loops > 0 && w.atSentinel() {
		return w.finish()
	}

	w.loops++
	if w.loops > w.opts.limits.MaxLoops {
		return w.trip("walk: loop bound reached")
	}

	reached := w.WalkUntilObstructedOrFreeOnLeft()
	if w.loops > 1 && reached {
		return w.finish()
	}

	if w.FreeOnLeft() {
		w.TurnLeft()
		if w.atSentinel() {
			return w.finish()
		}
		w.MoveForward()
	} else {
		w.TurnRightUntilFree()
	}

	if len(w.visited) > w.opts.limits.VisitFactor*w.board.Width*w.board.Height {
		return w.trip("walk: visited bound reached")
	}
	return true
}

func (w *Walk) finish() bool {
	w.done = true
	return false
}

func (w *Walk) trip(msg string) bool {
	w.tripped = true
	w.opts.logger.Warn(msg,
		"start", w.start, "start_dir", w.startDir,
		"pos", w.pos, "dir", w.dir,
		"loops", w.loops, "area", len(w.visited))
	return w.finish()
}

// Perimeter walks the whole boundary and returns the estimated area,
// which is always at least one.
func (w *Walk) Perimeter() int {
	for w.Step() {
	}
	return w.Area()
}

// Overlay gives the walker's arrow at its position and a crumb on every
// other visited cell. It fits game.Board.Render.
func (w *Walk) Overlay(p game.Point) (string, bool) {
	if p == w.pos {
		return w.dir.Arrow(), true
	}
	if w.Visited(p) {
		return string(game.CellCrumb.Rune()), true
	}
	return "", false
}

// String draws a copy of the board with the visited cells laid down as
// crumbs and the walker as an arrow. The walked board is left untouched.
func (w *Walk) String() string {
	b := w.board.Clone()
	b.Crumbs = w.Crumbs()
	b.Rebuild()
	return b.Render(func(p game.Point) (string, bool) {
		if p == w.pos {
			return w.dir.Arrow(), true
		}
		return "", false
	})
}
