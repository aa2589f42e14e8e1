package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Export serializes already-loaded tables into downloadable byte streams.
// Pure serialization: no new computation, no writes back to the sources.

const exportSchoolColumn = "학교"

// CombinedEnvironmentCSV concatenates every group's environment table into
// one CSV with a leading school column. Groups in sorted order, rows in
// source order; missing cells become empty fields.
func CombinedEnvironmentCSV(tables map[string]*Table) ([]byte, error) {
	groups := SortedKeys(tables)
	cols := unionColumns(tables, groups)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{exportSchoolColumn, ColTime}, cols...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range groups {
		t := tables[g]
		for i := 0; i < t.NumRows; i++ {
			rec := make([]string, 0, len(header))
			rec = append(rec, g, formatTime(t, i))
			for _, c := range cols {
				rec = append(rec, formatCell(t, c, i))
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CombinedGrowthXLSX concatenates every group's growth table into a single
// workbook sheet with a leading school column.
func CombinedGrowthXLSX(tables map[string]*Table) ([]byte, error) {
	groups := SortedKeys(tables)
	cols := unionColumns(tables, groups)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "생육결과"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	header := make([]any, 0, len(cols)+1)
	header = append(header, exportSchoolColumn)
	for _, c := range cols {
		header = append(header, c)
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	rowNum := 2
	for _, g := range groups {
		t := tables[g]
		for i := 0; i < t.NumRows; i++ {
			rec := make([]any, 0, len(cols)+1)
			rec = append(rec, g)
			for _, c := range cols {
				cells, ok := t.Cells[c]
				if ok && cells[i].Valid {
					rec = append(rec, cells[i].Value)
				} else {
					rec = append(rec, nil)
				}
			}
			if err := setRow(f, sheet, rowNum, rec); err != nil {
				return nil, err
			}
			rowNum++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// SortedKeys returns the group labels of a table mapping in sorted order.
func SortedKeys(tables map[string]*Table) []string {
	out := make([]string, 0, len(tables))
	for g := range tables {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// unionColumns merges the groups' column sets preserving first-seen order,
// so variants of the workbook with extra columns still export completely.
func unionColumns(tables map[string]*Table, groups []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, c := range tables[g].Columns {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func formatTime(t *Table, i int) string {
	if t.Times == nil || t.Times[i].IsZero() {
		return ""
	}
	return t.Times[i].Format(time.RFC3339)
}

func formatCell(t *Table, col string, i int) string {
	cells, ok := t.Cells[col]
	if !ok || !cells[i].Valid {
		return ""
	}
	return strconv.FormatFloat(cells[i].Value, 'g', -1, 64)
}
