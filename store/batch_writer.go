package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

var (
	// ErrGameMismatch is returned when a row handed to WriteGame belongs to
	// another game.
	ErrGameMismatch = errors.New("row belongs to another game")
	// ErrDuplicateGame is returned when a game is written twice into one batch.
	ErrDuplicateGame = errors.New("game already in batch")
	// ErrWriterClosed is returned after Finalize or Abort.
	ErrWriterClosed = errors.New("batch writer is closed")
)

// Batch describes a finalized replay batch. Path is empty when no game
// contributed rows.
type Batch struct {
	Path    string
	Rows    int
	GameIDs []string
}

// BatchWriter collects the analysis rows of a replay run, one game at a
// time, into a single parquet file. Rows go to outDir/tmp while the run is
// in progress; Finalize moves the file into outDir and Abort discards it.
type BatchWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[AnalysisRow]

	rows  int
	games []string
	seen  map[string]struct{}
}

func NewBatchWriter(outDir string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("analysis_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[AnalysisRow](f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", schemaName)

	return &BatchWriter{
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
		seen:    make(map[string]struct{}),
	}, nil
}

// WriteGame appends every row of one replayed game. All rows must carry
// gameID and a game may only be written once per batch. A game without rows
// is not recorded.
func (b *BatchWriter) WriteGame(gameID string, rows []AnalysisRow) error {
	if b.writer == nil {
		return ErrWriterClosed
	}
	if _, ok := b.seen[gameID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateGame, gameID)
	}
	for i := range rows {
		if rows[i].GameID != gameID {
			return fmt.Errorf("%w: row %d has %q, want %q", ErrGameMismatch, i, rows[i].GameID, gameID)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	if _, err := b.writer.Write(rows); err != nil {
		return fmt.Errorf("write game %s: %w", gameID, err)
	}
	b.rows += len(rows)
	b.games = append(b.games, gameID)
	b.seen[gameID] = struct{}{}
	return nil
}

// Rows is the number of rows written so far.
func (b *BatchWriter) Rows() int { return b.rows }

// GameIDs lists the games written so far, in write order.
func (b *BatchWriter) GameIDs() []string { return append([]string(nil), b.games...) }

// OutPath is where Finalize puts the file.
func (b *BatchWriter) OutPath() string { return b.outPath }

func (b *BatchWriter) close() error {
	closeErr := b.writer.Close()
	b.writer = nil
	_ = b.file.Sync()
	fileErr := b.file.Close()
	b.file = nil
	if closeErr != nil {
		return fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close parquet file: %w", fileErr)
	}
	return nil
}

// Finalize closes the file and moves it into outDir. An empty batch leaves
// nothing behind and returns a Batch with an empty Path.
func (b *BatchWriter) Finalize() (Batch, error) {
	if b.writer == nil {
		return Batch{}, ErrWriterClosed
	}
	if err := b.close(); err != nil {
		_ = os.Remove(b.tmpPath)
		return Batch{}, err
	}
	if b.rows == 0 {
		_ = os.Remove(b.tmpPath)
		return Batch{}, nil
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return Batch{}, fmt.Errorf("rename parquet: %w", err)
	}
	return Batch{Path: b.outPath, Rows: b.rows, GameIDs: b.GameIDs()}, nil
}

// Abort closes the file and removes it from tmp/. It does nothing once the
// writer is finalized, so it is safe to defer.
func (b *BatchWriter) Abort() error {
	if b.writer == nil {
		return nil
	}
	err := b.close()
	if rmErr := os.Remove(b.tmpPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = fmt.Errorf("remove tmp parquet: %w", rmErr)
	}
	return err
}
