package game

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestDirection_Turns(t *testing.T) {
	lefts := map[Direction]Direction{Up: Left, Left: Down, Down: Right, Right: Up}
	rights := map[Direction]Direction{Up: Right, Right: Down, Down: Left, Left: Up}

	for _, d := range AllDirections {
		if got := d.TurnLeft(); got != lefts[d] {
			t.Fatalf("%v.TurnLeft()=%v want=%v", d, got, lefts[d])
		}
		if got := d.TurnRight(); got != rights[d] {
			t.Fatalf("%v.TurnRight()=%v want=%v", d, got, rights[d])
		}
		if got := d.TurnLeft().TurnRight(); got != d {
			t.Fatalf("%v left then right=%v", d, got)
		}
		if got := d.TurnRight().TurnLeft(); got != d {
			t.Fatalf("%v right then left=%v", d, got)
		}

		l, r := d, d
		for i := 0; i < 4; i++ {
			l, r = l.TurnLeft(), r.TurnRight()
		}
		if l != d || r != d {
			t.Fatalf("%v after four turns: left=%v right=%v", d, l, r)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range AllDirections {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", d.String(), err)
		}
		if got != d {
			t.Fatalf("ParseDirection(%q)=%v want=%v", d.String(), got, d)
		}
	}

	for _, token := range []string{"", "UP", "north", "sideways"} {
		if _, err := ParseDirection(token); !errors.Is(err, ErrInvalidDirection) {
			t.Fatalf("ParseDirection(%q) err=%v want ErrInvalidDirection", token, err)
		}
	}
}

func TestDirection_JSON(t *testing.T) {
	b, err := json.Marshal([]Direction{Left, Down})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["left","down"]` {
		t.Fatalf("json=%s", b)
	}

	var d Direction
	if err := json.Unmarshal([]byte(`"diagonal"`), &d); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("unmarshal err=%v want ErrInvalidDirection", err)
	}
}

func TestPoint_Moved(t *testing.T) {
	p := Point{X: 0, Y: 0}
	want := map[Direction]Point{
		Right: {X: 1, Y: 0},
		Left:  {X: -1, Y: 0},
		Up:    {X: 0, Y: 1},
		Down:  {X: 0, Y: -1},
	}
	for d, w := range want {
		if got := p.Moved(d); got != w {
			t.Fatalf("Moved(%v)=%v want=%v", d, got, w)
		}
	}

	// One axis changes by exactly one, and DirectionTo recovers the move.
	for _, start := range []Point{{X: 0, Y: 0}, {X: 7, Y: -3}, {X: -2, Y: 11}} {
		for _, d := range AllDirections {
			q := start.Moved(d)
			dx, dy := q.X-start.X, q.Y-start.Y
			if dx*dx+dy*dy != 1 {
				t.Fatalf("%v.Moved(%v)=%v moves more than one cell", start, d, q)
			}
			dirs := start.DirectionTo(q)
			if len(dirs) != 1 || dirs[0] != d {
				t.Fatalf("%v.DirectionTo(%v)=%v want=[%v]", start, q, dirs, d)
			}
		}
	}
}

func TestPoint_MovedInvalidDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid direction")
		}
	}()
	Point{}.Moved(Direction(9))
}

func TestPoint_DistanceTo(t *testing.T) {
	p := Point{X: 0, Y: 0}
	if got := p.DistanceToXY(3, 4); got != 5 {
		t.Fatalf("DistanceToXY(3,4)=%v want=5", got)
	}
	if got := p.DistanceToXY(1, 1); got != math.Sqrt2 {
		t.Fatalf("DistanceToXY(1,1)=%v want=%v", got, math.Sqrt2)
	}
	if got := p.DistanceTo(Point{X: 1, Y: 1}); got != math.Sqrt2 {
		t.Fatalf("DistanceTo((1,1))=%v want=%v", got, math.Sqrt2)
	}
}

func TestPoint_DirectionTo(t *testing.T) {
	p := Point{X: 0, Y: 0}
	tests := []struct {
		name  string
		other Point
		want  []Direction
	}{
		{"same point", Point{X: 0, Y: 0}, nil},
		{"up right", Point{X: 1, Y: 1}, []Direction{Right, Up}},
		{"down right", Point{X: 1, Y: -1}, []Direction{Right, Down}},
		{"down left", Point{X: -1, Y: -1}, []Direction{Left, Down}},
		{"up left", Point{X: -1, Y: 1}, []Direction{Left, Up}},
		{"far right", Point{X: 9, Y: 0}, []Direction{Right}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.DirectionTo(tc.other)
			if len(got) != len(tc.want) {
				t.Fatalf("DirectionTo(%v)=%v want=%v", tc.other, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("DirectionTo(%v)=%v want=%v", tc.other, got, tc.want)
				}
			}
		})
	}
}
