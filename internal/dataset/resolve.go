package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel canonicalizes a group label, filename or configuration key
// to NFC. Every string read from a heterogeneous source (directory entry,
// workbook sheet name, config key) passes through here before any equality
// comparison or map lookup.
func NormalizeLabel(s string) string {
	return norm.NFC.String(s)
}

// ResolveFile finds the directory entry whose name matches target under
// Unicode normalization. Both sides are compared in NFC, so a file written
// with decomposed (NFD) Hangul jamo still matches a composed target and
// vice versa. os.ReadDir returns entries sorted by name, so the first match
// is deterministic regardless of how the filesystem iterates.
//
// Absence is reported as ErrFileNotFound; an existing empty file resolves
// normally.
func ResolveFile(dir, target string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}

	want := NormalizeLabel(target)
	for _, e := range entries {
		if NormalizeLabel(e.Name()) == want {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrFileNotFound, target, dir)
}
