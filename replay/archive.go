package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"gopkg.in/yaml.v3"

	"pursuit/game"
)

// MoveRow is one half-move of an archived game. Game-level columns repeat on
// every row and compress away through dictionary encoding.
//
// A game without moves is stored as a single row with Step -1.
type MoveRow struct {
	GameID     string `parquet:"game_id,dict"`
	LayoutName string `parquet:"layout_name,dict"`
	Layout     string `parquet:"layout,dict"`
	Pursuers   int32  `parquet:"pursuers"`
	Seed       int64  `parquet:"seed"`
	Settings   string `parquet:"settings,dict"` // game.Settings as YAML
	Step       int32  `parquet:"step"`
	Agent      int32  `parquet:"agent"`
	Action     string `parquet:"action,dict"`
}

const schemaName = "pursuit_move_v2"

func rows(records []*Record) ([]MoveRow, error) {
	var out []MoveRow
	for _, r := range records {
		settings, err := yaml.Marshal(r.Settings)
		if err != nil {
			return nil, fmt.Errorf("encode settings of game %s: %w", r.GameID, err)
		}
		base := MoveRow{
			GameID:     r.GameID,
			LayoutName: r.LayoutName,
			Layout:     r.Layout,
			Pursuers:   int32(r.Pursuers),
			Seed:       int64(r.Seed),
			Settings:   string(settings),
		}
		if len(r.Moves) == 0 {
			row := base
			row.Step = -1
			row.Agent = -1
			out = append(out, row)
			continue
		}
		for step, m := range r.Moves {
			row := base
			row.Step = int32(step)
			row.Agent = int32(m.Agent)
			row.Action = m.Action.String()
			out = append(out, row)
		}
	}
	return out, nil
}

// WriteArchive stores records in a zstd-compressed parquet file.
func WriteArchive(outPath string, records []*Record) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	moveRows, err := rows(records)
	if err != nil {
		return err
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, moveRows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaName),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadArchive loads the records of an archive, in the order they were written.
func ReadArchive(path string) ([]*Record, error) {
	moveRows, err := parquet.ReadFile[MoveRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	byID := make(map[string]*Record)
	steps := make(map[string][]int32)
	var records []*Record
	for _, row := range moveRows {
		r, ok := byID[row.GameID]
		if !ok {
			// Keys missing from the stored settings keep their default.
			settings := game.DefaultSettings()
			if err := yaml.Unmarshal([]byte(row.Settings), &settings); err != nil {
				return nil, fmt.Errorf("game %s settings: %w", row.GameID, err)
			}
			r = &Record{
				GameID:     row.GameID,
				LayoutName: row.LayoutName,
				Layout:     row.Layout,
				Pursuers:   int(row.Pursuers),
				Seed:       uint64(row.Seed),
				Settings:   settings,
			}
			byID[row.GameID] = r
			records = append(records, r)
		}
		if row.Step < 0 {
			continue
		}
		action, err := game.ParseDirection(row.Action)
		if err != nil {
			return nil, fmt.Errorf("game %s step %d: %w", row.GameID, row.Step, err)
		}
		r.Moves = append(r.Moves, game.Move{Agent: int(row.Agent), Action: action})
		steps[row.GameID] = append(steps[row.GameID], row.Step)
	}

	for id, r := range byID {
		order := steps[id]
		if sort.SliceIsSorted(order, func(i, j int) bool { return order[i] < order[j] }) {
			continue
		}
		indices := make([]int, len(order))
		for i := range indices {
			indices[i] = i
		}
		sort.SliceStable(indices, func(i, j int) bool { return order[indices[i]] < order[indices[j]] })
		moves := make([]game.Move, len(indices))
		for i, idx := range indices {
			moves[i] = r.Moves[idx]
		}
		r.Moves = moves
	}
	return records, nil
}
