package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ECTargets maps a group label to its target nutrient-solution EC level.
// The mapping is configuration, not data: it is supplied to JoinByGroup
// rather than read from the input files, and a group absent from it simply
// carries no target in the output.
type ECTargets map[string]float64

// DefaultECTargets returns the study's configured treatment levels.
func DefaultECTargets() ECTargets {
	return ECTargets{
		"송도고": 1.0,
		"하늘고": 2.0,
		"아라고": 4.0,
		"동산고": 8.0,
	}
}

// ParseECTargets parses an override of the form "송도고=1.0,하늘고=2.0".
// Keys are NFC-normalized so a decomposed shell argument still matches
// composed sheet names.
func ParseECTargets(s string) (ECTargets, error) {
	out := make(ECTargets)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid EC target %q (expected group=level)", part)
		}
		level, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid EC level in %q: %w", part, err)
		}
		out[NormalizeLabel(strings.TrimSpace(key))] = level
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no EC targets in %q", s)
	}
	return out, nil
}

// Lookup returns the target level for a group, normalizing the key first.
func (t ECTargets) Lookup(group string) (float64, bool) {
	v, ok := t[NormalizeLabel(group)]
	return v, ok
}

// Groups returns the configured group labels in sorted order.
func (t ECTargets) Groups() []string {
	out := make([]string, 0, len(t))
	for g := range t {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
