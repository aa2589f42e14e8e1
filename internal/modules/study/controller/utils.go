package controller

import (
	"fmt"
	"log/slog"
	"net/http"

	"polargrow-server/internal/charts"
	"polargrow-server/internal/dataset"
	"polargrow-server/internal/modules/study/views"
)

// missingValue stands in for an average that could not be computed
// (absent table, absent column, or zero valid rows).
const missingValue = "—"

func fmtAvg(v *float64) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtAvg2(v *float64) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtTarget(v *float64) string {
	if v == nil {
		return missingValue
	}
	return fmt.Sprintf("%g", *v)
}

// renderUnavailable writes the terminal data-load notice. Every page
// handler funnels load failures through here so no section renders on top
// of an empty required result.
func renderUnavailable(w http.ResponseWriter, err error) {
	slog.Error("dataset unavailable", "error", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	data := views.UnavailableData{Message: err.Error()}
	if renderErr := views.RenderUnavailable(w, &data); renderErr != nil {
		slog.Error("unavailable notice render failed", "error", renderErr)
	}
}

func bestCallout(summaries []dataset.Summary) *views.BestEC {
	best, ok := dataset.BestGroup(summaries)
	if !ok {
		return nil
	}
	return &views.BestEC{
		Group:     best.Group,
		ECTarget:  fmtTarget(best.ECTarget),
		AvgWeight: fmtAvg2(best.AvgFreshWeight),
	}
}

func environmentViewData(ds *dataset.Dataset, selected string) *views.EnvironmentData {
	selected = dataset.NormalizeLabel(selected)
	if _, ok := ds.Environment[selected]; !ok {
		selected = ""
	}

	data := &views.EnvironmentData{Selected: selected}
	for _, g := range ds.Groups {
		data.Groups = append(data.Groups, views.GroupOption{
			Name:     g,
			Selected: g == selected,
		})
	}
	for _, s := range ds.Summaries {
		data.Summary = append(data.Summary, views.SummaryRow{
			Group:          s.Group,
			AvgTemperature: fmtAvg(s.AvgTemperature),
			AvgHumidity:    fmtAvg(s.AvgHumidity),
			AvgPH:          fmtAvg2(s.AvgPH),
			AvgEC:          fmtAvg2(s.AvgEC),
			TargetEC:       fmtTarget(s.ECTarget),
		})
	}
	return data
}

func growthViewData(ds *dataset.Dataset) *views.GrowthData {
	data := &views.GrowthData{Best: bestCallout(ds.Summaries)}
	for _, s := range ds.Summaries {
		data.Summary = append(data.Summary, views.GrowthRow{
			Group:          s.Group,
			TargetEC:       fmtTarget(s.ECTarget),
			AvgFreshWeight: fmtAvg2(s.AvgFreshWeight),
			AvgLeafCount:   fmtAvg(s.AvgLeafCount),
			AvgShootLength: fmtAvg(s.AvgShootLength),
			Specimens:      s.GrowthRows,
		})
	}
	data.Correlations = growthCorrelations(ds)
	return data
}

// growthCorrelations pools every group's specimens and reports Pearson r
// for the two scatter views. A correlation that cannot be computed is
// simply omitted; it must not block the rest of the page.
func growthCorrelations(ds *dataset.Dataset) []views.CorrRow {
	pairs := []struct {
		label string
		xCol  string
	}{
		{"잎 수(장) vs 생중량(g)", dataset.ColLeafCount},
		{"지상부 길이(mm) vs 생중량(g)", dataset.ColShootLength},
	}

	var out []views.CorrRow
	for _, p := range pairs {
		pooled := pooledTable(ds.Growth, p.xCol, dataset.ColFreshWeight)
		r, err := dataset.Correlation(pooled, p.xCol, dataset.ColFreshWeight)
		if err != nil {
			continue
		}
		out = append(out, views.CorrRow{Label: p.label, Value: fmt.Sprintf("%.2f", r)})
	}
	return out
}

// pooledTable concatenates the named columns of every group into one table.
func pooledTable(tables map[string]*dataset.Table, cols ...string) *dataset.Table {
	pooled := &dataset.Table{
		Columns: cols,
		Cells:   make(map[string][]dataset.Cell, len(cols)),
	}
	for _, g := range dataset.SortedKeys(tables) {
		t := tables[g]
		for i := 0; i < t.NumRows; i++ {
			for _, c := range cols {
				cells, ok := t.Cells[c]
				if ok {
					pooled.Cells[c] = append(pooled.Cells[c], cells[i])
				} else {
					pooled.Cells[c] = append(pooled.Cells[c], dataset.Cell{})
				}
			}
			pooled.NumRows++
		}
	}
	return pooled
}

func colorForGroup(groups []string, name string) string {
	for i, g := range groups {
		if g == name {
			return charts.GroupColorHex(i)
		}
	}
	return charts.GroupColorHex(0)
}
