package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"polargrow-server/internal/charts"
	"polargrow-server/internal/dataset"
	"polargrow-server/internal/utils"
)

// handleChart renders one figure per request. A figure that cannot be
// built (no points, missing column, empty aggregate) fails with 422 and
// leaves the surrounding page intact; only that rendering unit dies.
func (c *studyControllerImpl) handleChart(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var png []byte
	switch name := r.PathValue("name"); name {
	case "env-temperature.png":
		png, err = envMeansChart(ds, dataset.ColTemperature, "평균 온도", "℃")
	case "env-humidity.png":
		png, err = envMeansChart(ds, dataset.ColHumidity, "평균 습도", "%")
	case "env-ph.png":
		png, err = envMeansChart(ds, dataset.ColPH, "평균 pH", "pH")
	case "env-ec.png":
		png, err = ecCompareChart(ds)
	case "env-timeseries.png":
		group := dataset.NormalizeLabel(r.URL.Query().Get("group"))
		t, ok := ds.Environment[group]
		if !ok {
			utils.WriteError(w, http.StatusNotFound, "unknown group: "+group)
			return
		}
		png, err = envTimeSeriesChart(t, group, c.store.Targets())
	case "growth-weight.png":
		png, err = growthMeansChart(ds, dataset.ColFreshWeight, "평균 생중량", "g")
	case "growth-leaves.png":
		png, err = growthMeansChart(ds, dataset.ColLeafCount, "평균 잎 수", "장")
	case "growth-length.png":
		png, err = growthMeansChart(ds, dataset.ColShootLength, "평균 지상부 길이", "mm")
	case "growth-count.png":
		png, err = specimenCountChart(ds)
	case "weight-box.png":
		png, err = weightBoxChart(ds)
	case "leaf-weight.png":
		png, err = growthScatterChart(ds, dataset.ColLeafCount, "잎 수 vs 생중량", "잎 수(장)")
	case "length-weight.png":
		png, err = growthScatterChart(ds, dataset.ColShootLength, "지상부 길이 vs 생중량", "지상부 길이(mm)")
	default:
		utils.WriteError(w, http.StatusNotFound, "unknown chart: "+name)
		return
	}

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, charts.ErrNoData) ||
			errors.Is(err, dataset.ErrMissingColumn) ||
			errors.Is(err, dataset.ErrEmptyAggregate) {
			status = http.StatusUnprocessableEntity
		}
		slog.Error("chart render failed", "chart", r.PathValue("name"), "error", err)
		utils.WriteError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		slog.Error("chart: write response failed", "error", err)
	}
}

// summaryAvg picks the averaged column out of a summary record.
func summaryAvg(s dataset.Summary, col string) *float64 {
	switch col {
	case dataset.ColTemperature:
		return s.AvgTemperature
	case dataset.ColHumidity:
		return s.AvgHumidity
	case dataset.ColPH:
		return s.AvgPH
	case dataset.ColEC:
		return s.AvgEC
	case dataset.ColFreshWeight:
		return s.AvgFreshWeight
	case dataset.ColLeafCount:
		return s.AvgLeafCount
	case dataset.ColShootLength:
		return s.AvgShootLength
	}
	return nil
}

// meansByGroup collects the groups that have an average for col, keeping
// label and value slices aligned.
func meansByGroup(ds *dataset.Dataset, col string) (labels []string, values []float64) {
	for _, s := range ds.Summaries {
		if v := summaryAvg(s, col); v != nil {
			labels = append(labels, s.Group)
			values = append(values, *v)
		}
	}
	return labels, values
}

func envMeansChart(ds *dataset.Dataset, col, title, yLabel string) ([]byte, error) {
	labels, values := meansByGroup(ds, col)
	return charts.Bars(title, yLabel, labels, values)
}

func growthMeansChart(ds *dataset.Dataset, col, title, yLabel string) ([]byte, error) {
	labels, values := meansByGroup(ds, col)
	return charts.Bars(title, yLabel, labels, values)
}

// ecCompareChart pairs measured EC with the configured target. Only groups
// carrying both values are drawn; a group unknown to the configuration
// shows up in the per-column charts but not here.
func ecCompareChart(ds *dataset.Dataset) ([]byte, error) {
	var labels []string
	var measured, target []float64
	for _, s := range ds.Summaries {
		if s.AvgEC == nil || s.ECTarget == nil {
			continue
		}
		labels = append(labels, s.Group)
		measured = append(measured, *s.AvgEC)
		target = append(target, *s.ECTarget)
	}
	return charts.PairedBars("목표 EC vs 실측 EC", "EC", labels, "실측 EC", measured, "목표 EC", target)
}

func envTimeSeriesChart(t *dataset.Table, group string, targets dataset.ECTargets) ([]byte, error) {
	var lines []charts.TimeLine
	for _, col := range []string{dataset.ColTemperature, dataset.ColHumidity, dataset.ColEC} {
		cells, ok := t.Cells[col]
		if !ok {
			continue
		}
		tl := charts.TimeLine{Name: col}
		for i := 0; i < t.NumRows; i++ {
			if !cells[i].Valid || t.Times == nil {
				continue
			}
			tl.Times = append(tl.Times, t.Times[i])
			tl.Values = append(tl.Values, cells[i].Value)
		}
		lines = append(lines, tl)
	}

	var ref *float64
	if target, ok := targets.Lookup(group); ok {
		ref = &target
	}
	return charts.TimeSeries(group+" 환경 변화", "", lines, ref, "목표 EC")
}

func specimenCountChart(ds *dataset.Dataset) ([]byte, error) {
	var labels []string
	var counts []float64
	for _, s := range ds.Summaries {
		if s.GrowthRows == 0 {
			continue
		}
		labels = append(labels, s.Group)
		counts = append(counts, float64(s.GrowthRows))
	}
	return charts.Bars("개체수", "", labels, counts)
}

func weightBoxChart(ds *dataset.Dataset) ([]byte, error) {
	var labels []string
	var groups [][]float64
	for _, g := range ds.Groups {
		t, ok := ds.Growth[g]
		if !ok {
			continue
		}
		vals, err := t.ColumnValues(dataset.ColFreshWeight)
		if err != nil || len(vals) == 0 {
			continue
		}
		labels = append(labels, g)
		groups = append(groups, vals)
	}
	return charts.Box("학교별 생중량 분포", "생중량(g)", labels, groups)
}

func growthScatterChart(ds *dataset.Dataset, xCol, title, xLabel string) ([]byte, error) {
	var series []charts.Series
	for _, g := range ds.Groups {
		t, ok := ds.Growth[g]
		if !ok {
			continue
		}
		xs, ys, err := t.PairedValues(xCol, dataset.ColFreshWeight)
		if err != nil {
			continue
		}
		series = append(series, charts.Series{Name: g, XS: xs, YS: ys})
	}
	return charts.Scatter(title, xLabel, "생중량(g)", series)
}
