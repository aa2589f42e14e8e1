package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// growthWorkbookName is the conventional workbook filename; lookup goes
// through ResolveFile so a decomposed (NFD) spelling on disk still matches.
const growthWorkbookName = "생육결과.xlsx"

// LoadGrowthTables locates the single growth workbook in dir and parses
// every sheet into a Table keyed by the NFC-normalized sheet name. The
// sheet name is the group label, so the same canonicalization applies as
// for filenames.
//
// A missing directory returns ErrDirNotFound; a directory without a
// workbook returns the empty map together with ErrNoDatasets.
func LoadGrowthTables(dir string) (map[string]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	tables := make(map[string]*Table)
	workbook, err := ResolveFile(dir, growthWorkbookName)
	if err != nil {
		if !errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		// Not the conventional name; fall back to the first workbook by
		// extension.
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
				workbook = filepath.Join(dir, e.Name())
				break
			}
		}
	}
	if workbook == "" {
		return tables, fmt.Errorf("%w: no workbook (.xlsx) in %s", ErrNoDatasets, dir)
	}

	f, err := excelize.OpenFile(workbook)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(workbook), err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		tables[NormalizeLabel(sheet)] = tableFromRows(rows)
	}
	return tables, nil
}

// tableFromRows converts a sheet's raw string matrix (header row first)
// into a Table. Non-numeric cells outside the time column are recorded as
// missing rather than failing the sheet.
func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{Cells: map[string][]Cell{}}
	}

	timeIdx := -1
	cols := make([]string, 0, len(rows[0]))
	colIdx := make([]int, 0, len(rows[0]))
	for i, h := range rows[0] {
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

	for _, rec := range rows[1:] {
		if timeIdx >= 0 {
			t.Times = append(t.Times, parseTimestamp(fieldAt(rec, timeIdx)))
		}
		for j, c := range cols {
			t.Cells[c] = append(t.Cells[c], parseCell(fieldAt(rec, colIdx[j])))
		}
		t.NumRows++
	}
	return t
}
