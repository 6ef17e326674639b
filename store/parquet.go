package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/rninformatics/battlesnake-utils/analysis"
)

const schemaName = "analysis_row_v1"

// AnalysisRow is the analysis of one (game, turn, ego) snapshot.
//
// Directions holds one entry per move in the order left, up, right, down.
// Food fields are zero when no food was found.
type AnalysisRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	YouID  string `parquet:"you_id,dict"`
	Width  int32  `parquet:"width"`
	Height int32  `parquet:"height"`

	HeadX   int32  `parquet:"head_x"`
	HeadY   int32  `parquet:"head_y"`
	Facing  string `parquet:"facing,dict"`
	TChoice bool   `parquet:"t_choice"`

	Directions []DirectionRow `parquet:"directions"`

	FoodFound    bool     `parquet:"food_found"`
	FoodDistance float32  `parquet:"food_distance"`
	FoodDirs     []string `parquet:"food_dirs"`
	ClearFound   bool     `parquet:"clear_food_found"`

	Source string `parquet:"source,dict"`
}

type DirectionRow struct {
	Direction string `parquet:"direction,dict"`
	Free      bool   `parquet:"free"`
	Legal     bool   `parquet:"legal"`
	DeadEnd   bool   `parquet:"dead_end"`
	TChoice   bool   `parquet:"t_choice"`
	Walked    bool   `parquet:"walked"`
	Area      int32  `parquet:"area"`
	Tripped   bool   `parquet:"tripped"`
}

// RowFromReport flattens a report into a row.
func RowFromReport(gameID, source string, width, height int, r analysis.Report) AnalysisRow {
	row := AnalysisRow{
		GameID:     gameID,
		Turn:       int32(r.Turn),
		YouID:      r.YouID,
		Width:      int32(width),
		Height:     int32(height),
		HeadX:      int32(r.Head.X),
		HeadY:      int32(r.Head.Y),
		Facing:     r.Facing.String(),
		TChoice:    r.TChoice,
		Directions: make([]DirectionRow, 0, len(r.Verdicts)),
		FoodFound:  r.Food.Found,
		ClearFound: r.Clear.Found,
		Source:     source,
	}
	for _, v := range r.Verdicts {
		row.Directions = append(row.Directions, DirectionRow{
			Direction: v.Direction.String(),
			Free:      v.Free,
			Legal:     v.Legal,
			DeadEnd:   v.DeadEnd,
			TChoice:   v.TChoice,
			Walked:    v.Walked,
			Area:      int32(v.Area),
			Tripped:   v.Tripped,
		})
	}
	if r.Food.Found {
		row.FoodDistance = float32(r.Food.Distance)
		for _, d := range r.Food.Direction {
			row.FoodDirs = append(row.FoodDirs, d.String())
		}
	}
	return row
}

// WriteAnalysisParquet writes rows to outPath through a temp file and an
// atomic rename.
func WriteAnalysisParquet(outPath string, rows []AnalysisRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaName),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadAnalysisParquet loads every row of a file written by this package.
func ReadAnalysisParquet(path string) ([]AnalysisRow, error) {
	rows, err := parquet.ReadFile[AnalysisRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}
