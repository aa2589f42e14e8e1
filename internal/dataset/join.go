package dataset

import "sort"

// Summary is the per-group aggregate record consumed by the presentation
// layer. Pointer fields are nil when the backing table, column or target is
// absent for that group; a group present in only one source still gets a
// record.
type Summary struct {
	Group    string   `json:"group"`
	ECTarget *float64 `json:"ecTarget"`

	EnvRows    int `json:"envRows"`
	GrowthRows int `json:"growthRows"`

	AvgTemperature *float64 `json:"avgTemperature"`
	AvgHumidity    *float64 `json:"avgHumidity"`
	AvgPH          *float64 `json:"avgPh"`
	AvgEC          *float64 `json:"avgEc"`

	AvgFreshWeight *float64 `json:"avgFreshWeight"`
	AvgLeafCount   *float64 `json:"avgLeafCount"`
	AvgShootLength *float64 `json:"avgShootLength"`
}

// JoinByGroup assembles one Summary per group label appearing in either
// source mapping. Labels arrive NFC-normalized from the loaders, so the
// union is a plain map union; output order is sorted for determinism.
// A column that is absent or has no valid rows degrades to a nil average
// rather than failing the join.
func JoinByGroup(env, growth map[string]*Table, targets ECTargets) []Summary {
	labels := make(map[string]struct{}, len(env)+len(growth))
	for g := range env {
		labels[g] = struct{}{}
	}
	for g := range growth {
		labels[g] = struct{}{}
	}
	order := make([]string, 0, len(labels))
	for g := range labels {
		order = append(order, g)
	}
	sort.Strings(order)

	out := make([]Summary, 0, len(order))
	for _, g := range order {
		s := Summary{Group: g}
		if target, ok := targets.Lookup(g); ok {
			s.ECTarget = &target
		}
		if t, ok := env[g]; ok {
			s.EnvRows = t.NumRows
			s.AvgTemperature = meanOrNil(t, ColTemperature)
			s.AvgHumidity = meanOrNil(t, ColHumidity)
			s.AvgPH = meanOrNil(t, ColPH)
			s.AvgEC = meanOrNil(t, ColEC)
		}
		if t, ok := growth[g]; ok {
			s.GrowthRows = t.NumRows
			s.AvgFreshWeight = meanOrNil(t, ColFreshWeight)
			s.AvgLeafCount = meanOrNil(t, ColLeafCount)
			s.AvgShootLength = meanOrNil(t, ColShootLength)
		}
		out = append(out, s)
	}
	return out
}

func meanOrNil(t *Table, col string) *float64 {
	m, err := ColumnMean(t, col)
	if err != nil {
		return nil
	}
	return &m
}

// BestGroup returns the summary with the highest mean fresh weight. The
// "optimal EC" callout is derived from the data here, not hardcoded; ok is
// false when no group has a fresh-weight average.
func BestGroup(summaries []Summary) (Summary, bool) {
	best := -1
	for i, s := range summaries {
		if s.AvgFreshWeight == nil {
			continue
		}
		if best < 0 || *s.AvgFreshWeight > *summaries[best].AvgFreshWeight {
			best = i
		}
	}
	if best < 0 {
		return Summary{}, false
	}
	return summaries[best], true
}
