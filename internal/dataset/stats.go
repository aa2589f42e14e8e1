package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ColumnMean returns the arithmetic mean of one column, skipping rows with
// a missing value for that column. An absent column is ErrMissingColumn; a
// column with zero valid rows is ErrEmptyAggregate, never a silent 0 or NaN.
func ColumnMean(t *Table, col string) (float64, error) {
	vals, err := t.ColumnValues(col)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("%w: column %q", ErrEmptyAggregate, col)
	}
	return stat.Mean(vals, nil), nil
}

// GroupMeans computes per-column means with ColumnMean's error contract:
// the first absent or all-missing column fails the whole call.
func GroupMeans(t *Table, cols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(cols))
	for _, c := range cols {
		m, err := ColumnMean(t, c)
		if err != nil {
			return nil, err
		}
		out[c] = m
	}
	return out, nil
}

// Correlation returns the Pearson correlation of the rows where both
// columns carry a value. Shown alongside the scatter views.
func Correlation(t *Table, xCol, yCol string) (float64, error) {
	xs, ys, err := t.PairedValues(xCol, yCol)
	if err != nil {
		return 0, err
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: columns %q, %q", ErrEmptyAggregate, xCol, yCol)
	}
	return stat.Correlation(xs, ys, nil), nil
}
