package dataset

import "time"

// Well-known column names of the two source table kinds.
const (
	ColTime        = "time"
	ColTemperature = "temperature"
	ColHumidity    = "humidity"
	ColPH          = "ph"
	ColEC          = "ec"

	ColFreshWeight = "생중량(g)"
	ColLeafCount   = "잎 수(장)"
	ColShootLength = "지상부 길이(mm)"
)

// Cell is one numeric value with a validity bit. A cell read from an empty
// or non-numeric source field is invalid, never zero.
type Cell struct {
	Value float64
	Valid bool
}

// Table is an immutable, column-oriented numeric table parsed from one
// source (a CSV file or a workbook sheet). Tables are built once by the
// loaders and never mutated afterwards.
type Table struct {
	// Columns lists the numeric columns in source order. The time column,
	// when the source has one, is not listed here.
	Columns []string

	// Cells maps a column name to one cell per row.
	Cells map[string][]Cell

	// Times holds the parsed time column, one entry per row. Nil when the
	// source has no time column; a zero time marks an unparseable stamp.
	Times []time.Time

	// NumRows is the number of data rows (header excluded).
	NumRows int
}

// HasColumn reports whether the table carries the named numeric column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Cells[name]
	return ok
}

// ColumnValues returns the valid values of one column in row order.
// Rows with a missing value for that column are skipped.
func (t *Table) ColumnValues(name string) ([]float64, error) {
	cells, ok := t.Cells[name]
	if !ok {
		return nil, missingColumn(name)
	}
	vals := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.Valid {
			vals = append(vals, c.Value)
		}
	}
	return vals, nil
}

// PairedValues returns the rows where both columns carry a value, as two
// parallel slices. Used for scatter views.
func (t *Table) PairedValues(xCol, yCol string) (xs, ys []float64, err error) {
	xCells, ok := t.Cells[xCol]
	if !ok {
		return nil, nil, missingColumn(xCol)
	}
	yCells, ok := t.Cells[yCol]
	if !ok {
		return nil, nil, missingColumn(yCol)
	}
	for i := 0; i < t.NumRows; i++ {
		if xCells[i].Valid && yCells[i].Valid {
			xs = append(xs, xCells[i].Value)
			ys = append(ys, yCells[i].Value)
		}
	}
	return xs, ys, nil
}

// Rows flattens the table into one map per row for JSON responses.
// Missing cells come through as nil, not zero.
func (t *Table) Rows() []map[string]any {
	out := make([]map[string]any, t.NumRows)
	for i := 0; i < t.NumRows; i++ {
		row := make(map[string]any, len(t.Columns)+1)
		if t.Times != nil && !t.Times[i].IsZero() {
			row[ColTime] = t.Times[i]
		}
		for _, col := range t.Columns {
			c := t.Cells[col][i]
			if c.Valid {
				row[col] = c.Value
			} else {
				row[col] = nil
			}
		}
		out[i] = row
	}
	return out
}
