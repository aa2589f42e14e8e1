package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// envFileSuffix is the filename convention for per-school sensor exports,
// e.g. "송도고_환경데이터.csv" → group "송도고".
const envFileSuffix = "_환경데이터"

// Timestamp layouts seen in the sensor exports, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// GroupFromFilename derives the group label from an environment filename.
// The name is NFC-normalized first (filenames on some filesystems arrive
// decomposed), then the known suffix is stripped; names that don't follow
// the suffix convention fall back to the first underscore-separated
// segment. Both rules were in use across deployments; trying them in this
// order accepts files named either way.
func GroupFromFilename(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = NormalizeLabel(stem)
	if cut, ok := strings.CutSuffix(stem, envFileSuffix); ok {
		return cut
	}
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return stem
}

// LoadEnvironmentTables enumerates dir, parses every delimited-text file
// into a Table and keys it by the group label derived from its filename.
//
// A missing directory returns ErrDirNotFound; a directory with no CSV files
// returns the empty map together with ErrNoDatasets so callers can surface
// the condition without treating it as a fault. Extension matching is
// case-insensitive.
func LoadEnvironmentTables(dir string) (map[string]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	tables := make(map[string]*Table)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		t, err := readCSVTable(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		tables[GroupFromFilename(e.Name())] = t
	}
	if len(tables) == 0 {
		return tables, fmt.Errorf("%w: no delimited-text files in %s", ErrNoDatasets, dir)
	}
	return tables, nil
}

func readCSVTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return &Table{Cells: map[string][]Cell{}}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	timeIdx := -1
	cols := make([]string, 0, len(header))
	colIdx := make([]int, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, ColTime) {
			timeIdx = i
			continue
		}
		cols = append(cols, NormalizeLabel(h))
		colIdx = append(colIdx, i)
	}

	t := &Table{
		Columns: cols,
		Cells:   make(map[string][]Cell, len(cols)),
	}
	for _, c := range cols {
		t.Cells[c] = nil
	}
	if timeIdx >= 0 {
		t.Times = []time.Time{}
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", t.NumRows+2, err)
		}
		if timeIdx >= 0 {
			t.Times = append(t.Times, parseTimestamp(fieldAt(rec, timeIdx)))
		}
		for j, c := range cols {
			t.Cells[c] = append(t.Cells[c], parseCell(fieldAt(rec, colIdx[j])))
		}
		t.NumRows++
	}
	return t, nil
}

func fieldAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cell{}
	}
	return Cell{Value: v, Valid: true}
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
