package dataset

import "testing"

func TestJoinByGroup_SpecimenExample(t *testing.T) {
	env := map[string]*Table{
		"A": makeTable([]string{ColTemperature, ColHumidity},
			[]Cell{cell(20), cell(60)},
			[]Cell{cell(22), cell(65)},
		),
	}
	growth := map[string]*Table{
		"A": makeTable([]string{ColFreshWeight},
			[]Cell{cell(1.0)},
			[]Cell{cell(1.5)},
		),
	}
	targets := ECTargets{"A": 2.0}

	out := JoinByGroup(env, growth, targets)
	if len(out) != 1 {
		t.Fatalf("got %d summaries, want 1", len(out))
	}
	s := out[0]
	if s.Group != "A" {
		t.Errorf("Group = %q, want A", s.Group)
	}
	if s.AvgTemperature == nil || *s.AvgTemperature != 21.0 {
		t.Errorf("AvgTemperature = %v, want 21.0", s.AvgTemperature)
	}
	if s.AvgHumidity == nil || *s.AvgHumidity != 62.5 {
		t.Errorf("AvgHumidity = %v, want 62.5", s.AvgHumidity)
	}
	if s.AvgFreshWeight == nil || *s.AvgFreshWeight != 1.25 {
		t.Errorf("AvgFreshWeight = %v, want 1.25", s.AvgFreshWeight)
	}
	if s.ECTarget == nil || *s.ECTarget != 2.0 {
		t.Errorf("ECTarget = %v, want 2.0", s.ECTarget)
	}
	if s.EnvRows != 2 || s.GrowthRows != 2 {
		t.Errorf("rows = %d/%d, want 2/2", s.EnvRows, s.GrowthRows)
	}
}

func TestJoinByGroup_UnionOfSources(t *testing.T) {
	env := map[string]*Table{
		"envonly": makeTable([]string{ColTemperature}, []Cell{cell(20)}),
		"both":    makeTable([]string{ColTemperature}, []Cell{cell(21)}),
	}
	growth := map[string]*Table{
		"growthonly": makeTable([]string{ColFreshWeight}, []Cell{cell(1)}),
		"both":       makeTable([]string{ColFreshWeight}, []Cell{cell(2)}),
	}

	out := JoinByGroup(env, growth, nil)
	if len(out) != 3 {
		t.Fatalf("got %d summaries, want union of 3 groups", len(out))
	}
	// Sorted order: both, envonly, growthonly.
	if out[0].Group != "both" || out[1].Group != "envonly" || out[2].Group != "growthonly" {
		t.Errorf("order = %q %q %q", out[0].Group, out[1].Group, out[2].Group)
	}

	envOnly := out[1]
	if envOnly.AvgFreshWeight != nil || envOnly.GrowthRows != 0 {
		t.Error("env-only group must degrade, not invent growth values")
	}
	growthOnly := out[2]
	if growthOnly.AvgTemperature != nil || growthOnly.EnvRows != 0 {
		t.Error("growth-only group must degrade, not invent env values")
	}
	if envOnly.ECTarget != nil {
		t.Error("group unknown to the configuration must carry a nil target")
	}
}

func TestJoinByGroup_ConfiguredGroupAlwaysHasTarget(t *testing.T) {
	env := map[string]*Table{
		"송도고": makeTable([]string{ColTemperature}, []Cell{cell(18)}),
	}
	out := JoinByGroup(env, nil, DefaultECTargets())
	if len(out) != 1 {
		t.Fatalf("got %d summaries, want 1", len(out))
	}
	if out[0].ECTarget == nil || *out[0].ECTarget != 1.0 {
		t.Errorf("ECTarget = %v, want 1.0 from configuration", out[0].ECTarget)
	}
}

func TestBestGroup(t *testing.T) {
	w1, w2 := 1.1, 2.3
	summaries := []Summary{
		{Group: "a", AvgFreshWeight: &w1},
		{Group: "b", AvgFreshWeight: &w2},
		{Group: "c"},
	}
	best, ok := BestGroup(summaries)
	if !ok {
		t.Fatal("BestGroup() ok = false, want true")
	}
	if best.Group != "b" {
		t.Errorf("best = %q, want b", best.Group)
	}

	if _, ok := BestGroup([]Summary{{Group: "c"}}); ok {
		t.Error("BestGroup() over weightless summaries must report ok=false")
	}
}
