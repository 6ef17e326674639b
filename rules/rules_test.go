package rules

import (
	"testing"

	"github.com/rninformatics/battlesnake-utils/game"
)

func newState(w, h int, food []game.Point, body ...game.Point) *game.State {
	you := game.Snake{ID: "me", Name: "me", Health: 10, Length: len(body), Body: body}
	return &game.State{
		Board: game.NewBoard(w, h, food, nil, []game.Snake{you}),
		YouID: "me",
	}
}

func logNextState(t *testing.T, name string, before *game.State, d game.Direction, after *game.State) {
	t.Helper()
	t.Logf("=== %s ===\nBefore:\n%sMove: %v\nAfter:\n%s", name, before.Board, d, after.Board)
}

func assertBody(t *testing.T, got, want []game.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestNextState_NormalMove_NoFood(t *testing.T) {
	before := newState(7, 7, nil, game.Point{X: 3, Y: 3}, game.Point{X: 3, Y: 2}, game.Point{X: 3, Y: 1})

	after := NextState(before, game.Up)
	logNextState(t, "NextState normal move", before, game.Up, after)

	assertBody(t, after.You().Body, []game.Point{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 3, Y: 2}})
	if after.You().Health != 9 {
		t.Fatalf("health=%d want=9", after.You().Health)
	}
	if after.Turn != 1 {
		t.Fatalf("turn=%d want=1", after.Turn)
	}
	if after.Board.Cell(game.Point{X: 3, Y: 1}) != game.CellEmpty {
		t.Fatalf("old tail cell still occupied")
	}
}

func TestNextState_EatFood_Grows(t *testing.T) {
	before := newState(7, 7, []game.Point{{X: 3, Y: 4}}, game.Point{X: 3, Y: 3}, game.Point{X: 3, Y: 2}, game.Point{X: 3, Y: 1})

	after := NextState(before, game.Up)
	logNextState(t, "NextState eat food", before, game.Up, after)

	assertBody(t, after.You().Body, []game.Point{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1}})
	if after.You().Health != 100 {
		t.Fatalf("health=%d want=100", after.You().Health)
	}
	if len(after.Board.Food) != 0 {
		t.Fatalf("food len=%d want=0", len(after.Board.Food))
	}
}

func TestNextState_StackedSpawn_EatFood(t *testing.T) {
	before := newState(7, 7, []game.Point{{X: 1, Y: 2}}, game.Point{X: 1, Y: 1}, game.Point{X: 1, Y: 1}, game.Point{X: 1, Y: 1})

	after := NextState(before, game.Up)
	logNextState(t, "NextState stacked spawn eat", before, game.Up, after)

	assertBody(t, after.You().Body, []game.Point{{X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}})
	if got := after.You().FacingDirection(); got != game.Up {
		t.Fatalf("facing=%v want=up", got)
	}
}

func TestNextState_DoesNotTouchInput(t *testing.T) {
	before := newState(7, 7, []game.Point{{X: 4, Y: 3}}, game.Point{X: 3, Y: 3}, game.Point{X: 3, Y: 2})

	_ = NextState(before, game.Right)

	assertBody(t, before.You().Body, []game.Point{{X: 3, Y: 3}, {X: 3, Y: 2}})
	if len(before.Board.Food) != 1 || before.Turn != 0 || before.You().Health != 10 {
		t.Fatalf("input state was modified")
	}
	if before.Board.Cell(game.Point{X: 4, Y: 3}) != game.CellFood {
		t.Fatalf("input grid was modified")
	}
}

func TestLegalMoves_Corner(t *testing.T) {
	st := newState(5, 5, nil, game.Point{X: 0, Y: 0}, game.Point{X: 1, Y: 0}, game.Point{X: 2, Y: 0})

	moves := LegalMoves(st)
	if len(moves) != 1 || moves[0] != game.Up {
		t.Fatalf("moves=%v want=[up]", moves)
	}
}

func TestLegalMoves_OwnTailBlocksThisTurn(t *testing.T) {
	st := newState(5, 5, nil,
		game.Point{X: 1, Y: 1}, game.Point{X: 1, Y: 2}, game.Point{X: 2, Y: 2}, game.Point{X: 2, Y: 1})
	t.Logf("\n%s", st.Board)

	moves := LegalMoves(st)
	want := []game.Direction{game.Left, game.Down}
	if len(moves) != len(want) {
		t.Fatalf("moves=%v want=%v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("moves=%v want=%v", moves, want)
		}
	}
}

func TestLegalMoves_NoYou(t *testing.T) {
	st := newState(5, 5, nil, game.Point{X: 2, Y: 2})
	st.YouID = "ghost"
	if moves := LegalMoves(st); len(moves) != 0 {
		t.Fatalf("moves=%v want none", moves)
	}
}
