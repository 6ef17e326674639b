package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/game"
)

func sampleReport() analysis.Report {
	return analysis.Report{
		Turn:    3,
		YouID:   "me",
		Head:    game.Point{X: 2, Y: 1},
		Facing:  game.Up,
		TChoice: true,
		Verdicts: []analysis.Verdict{
			{Direction: game.Left, Free: true, Legal: true},
			{Direction: game.Up, Free: true, Legal: true, TChoice: true, Walked: true, Area: 21},
			{Direction: game.Right, Free: true, Legal: true},
			{Direction: game.Down, Free: true, DeadEnd: true},
		},
		Food: analysis.Food{Found: true, Direction: []game.Direction{game.Right, game.Up}, Distance: 2},
	}
}

func TestRowFromReport(t *testing.T) {
	row := RowFromReport("g1", "test", 5, 5, sampleReport())
	if row.Turn != 3 || row.Facing != "up" || !row.TChoice || row.HeadX != 2 || row.HeadY != 1 {
		t.Fatalf("row=%+v", row)
	}
	if len(row.Directions) != 4 || row.Directions[1].Area != 21 || !row.Directions[3].DeadEnd {
		t.Fatalf("directions=%+v", row.Directions)
	}
	if !row.FoodFound || row.FoodDistance != 2 || len(row.FoodDirs) != 2 || row.FoodDirs[0] != "right" {
		t.Fatalf("food=%v %v %v", row.FoodFound, row.FoodDistance, row.FoodDirs)
	}
}

func TestWriteAnalysisParquet_ReadBack(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "g1.parquet")
	rows := []AnalysisRow{
		RowFromReport("g1", "test", 5, 5, sampleReport()),
		RowFromReport("g1", "test", 5, 5, analysis.Report{Turn: 4, YouID: "me"}),
	}
	if err := WriteAnalysisParquet(out, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind: %v", err)
	}

	got, err := ReadAnalysisParquet(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows=%d want=2", len(got))
	}
	if got[0].GameID != "g1" || got[0].Directions[1].Area != 21 || got[0].Directions[1].Direction != "up" {
		t.Fatalf("row0=%+v", got[0])
	}
	if got[1].Turn != 4 || len(got[1].Directions) != 0 {
		t.Fatalf("row1=%+v", got[1])
	}
}

func gameRows(gameID string, n int) []AnalysisRow {
	rows := make([]AnalysisRow, n)
	for i := range rows {
		r := sampleReport()
		r.Turn = i
		rows[i] = RowFromReport(gameID, "test", 5, 5, r)
	}
	return rows
}

func tmpEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, "tmp"))
	if err != nil {
		t.Fatalf("read tmp: %v", err)
	}
	return entries
}

func TestBatchWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Abort()

	if err := w.WriteGame("a", gameRows("a", 2)); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := w.WriteGame("empty", nil); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if err := w.WriteGame("b", gameRows("b", 1)); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if w.Rows() != 3 || len(w.GameIDs()) != 2 {
		t.Fatalf("rows=%d games=%v", w.Rows(), w.GameIDs())
	}

	batch, err := w.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if batch.Path != w.OutPath() || batch.Rows != 3 || len(batch.GameIDs) != 2 || batch.GameIDs[1] != "b" {
		t.Fatalf("batch=%+v", batch)
	}
	got, err := ReadAnalysisParquet(batch.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 || got[1].Turn != 1 || got[2].GameID != "b" {
		t.Fatalf("got=%+v", got)
	}

	if err := w.WriteGame("c", gameRows("c", 1)); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("write after finalize: err=%v", err)
	}
	if err := w.Abort(); err != nil {
		t.Fatalf("abort after finalize: %v", err)
	}
	if _, err := os.Stat(batch.Path); err != nil {
		t.Fatalf("abort after finalize removed output: %v", err)
	}
}

func TestBatchWriter_RejectsForeignRows(t *testing.T) {
	w, err := NewBatchWriter(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Abort()

	rows := append(gameRows("a", 1), gameRows("b", 1)...)
	if err := w.WriteGame("a", rows); !errors.Is(err, ErrGameMismatch) {
		t.Fatalf("err=%v want ErrGameMismatch", err)
	}
	if w.Rows() != 0 {
		t.Fatalf("rows=%d, mismatched game should write nothing", w.Rows())
	}

	if err := w.WriteGame("a", gameRows("a", 1)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.WriteGame("a", gameRows("a", 1)); !errors.Is(err, ErrDuplicateGame) {
		t.Fatalf("err=%v want ErrDuplicateGame", err)
	}
}

func TestBatchWriter_AbortRemovesTmp(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.WriteGame("a", gameRows("a", 2)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if n := len(tmpEntries(t, dir)); n != 1 {
		t.Fatalf("tmp entries=%d want=1", n)
	}

	if err := w.Abort(); err != nil {
		t.Fatalf("abort: %v", err)
	}
	if entries := tmpEntries(t, dir); len(entries) != 0 {
		t.Fatalf("tmp not cleaned: %v", entries)
	}
	if _, err := os.Stat(w.OutPath()); !os.IsNotExist(err) {
		t.Fatalf("aborted batch reached outDir: %v", err)
	}
	if _, err := w.Finalize(); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("finalize after abort: err=%v", err)
	}
}

func TestBatchWriter_EmptyLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewBatchWriter(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	batch, err := w.Finalize()
	if err != nil || batch.Path != "" || batch.Rows != 0 {
		t.Fatalf("batch=%+v err=%v", batch, err)
	}
	if entries := tmpEntries(t, dir); len(entries) != 0 {
		t.Fatalf("tmp not cleaned: %v", entries)
	}
}

func TestReplayedLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "replayed.log")
	l, err := OpenReplayedLog(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := l.Record([]string{"a", "", "b", "a"}, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Record([]string{"c"}, "snek"); err != nil {
		t.Fatalf("record snek: %v", err)
	}
	// a was replayed for every snake already.
	if err := l.Record([]string{"a"}, "snek"); err != nil {
		t.Fatalf("record covered: %v", err)
	}
	if l.Count() != 3 {
		t.Fatalf("count=%d want=3", l.Count())
	}

	tests := []struct {
		key  ReplayKey
		want bool
	}{
		{ReplayKey{GameID: "a"}, true},
		{ReplayKey{GameID: "a", You: "snek"}, true},
		{ReplayKey{GameID: "c", You: "snek"}, true},
		{ReplayKey{GameID: "c", You: "other"}, false},
		{ReplayKey{GameID: "c"}, false},
		{ReplayKey{GameID: "d"}, false},
	}
	for _, tt := range tests {
		if got := l.Has(tt.key); got != tt.want {
			t.Fatalf("Has(%+v)=%v want=%v", tt.key, got, tt.want)
		}
	}
	if got := l.Pending([]string{"a", "c", "d"}, "other"); len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Fatalf("pending=%v want=[c d]", got)
	}

	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := l.Record([]string{"e"}, ""); err == nil {
		t.Fatalf("record after close should fail")
	}

	reopened, err := OpenReplayedLog(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if reopened.Count() != 3 || !reopened.Has(ReplayKey{GameID: "c", You: "snek"}) {
		t.Fatalf("reopened count=%d", reopened.Count())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a\nb\nc\tsnek\n" {
		t.Fatalf("file=%q", data)
	}
}

func TestReplayedLog_RejectsUnloggableSnake(t *testing.T) {
	l, err := OpenReplayedLog(filepath.Join(t.TempDir(), "replayed.log"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()
	if err := l.Record([]string{"a"}, "bad\tid"); err == nil {
		t.Fatalf("tab in snake id should be rejected")
	}
}
