package dataset

import (
	"errors"
	"fmt"
)

// Load-boundary conditions. ErrDirNotFound and ErrNoDatasets are reportable:
// callers turn them into a user-visible notice and stop rendering the
// dependent sections instead of pushing empty maps deeper.
var (
	// ErrDirNotFound means the data directory itself is absent.
	ErrDirNotFound = errors.New("data directory not found")

	// ErrFileNotFound means a specific file is absent from the directory.
	// Distinct from an empty file, which parses to an empty table.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoDatasets means the directory exists but holds no qualifying
	// files of the requested kind.
	ErrNoDatasets = errors.New("no qualifying data files")
)

// Aggregation faults. These surface at the point of use, not during load.
var (
	// ErrMissingColumn means an expected numeric column is absent from a
	// parsed table.
	ErrMissingColumn = errors.New("column not present")

	// ErrEmptyAggregate means a mean was requested over zero valid rows.
	ErrEmptyAggregate = errors.New("no rows to aggregate")
)

func missingColumn(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
