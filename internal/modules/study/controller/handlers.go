package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"polargrow-server/internal/dataset"
	"polargrow-server/internal/modules/study/views"
	"polargrow-server/internal/utils"
)

func (c *studyControllerImpl) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ds, err := c.dataset()
	if err != nil {
		renderUnavailable(w, err)
		return
	}

	data := views.OverviewData{}
	for _, s := range ds.Summaries {
		data.Rows = append(data.Rows, views.GroupRow{
			Name:      s.Group,
			ECTarget:  fmtTarget(s.ECTarget),
			Specimens: s.GrowthRows,
			Color:     colorForGroup(ds.Groups, s.Group),
		})
		data.TotalSpecimens += s.GrowthRows
	}
	data.Best = bestCallout(ds.Summaries)

	pooledEnv := pooledTable(ds.Environment, dataset.ColTemperature, dataset.ColHumidity)
	data.AvgTemperature = meanLabel(pooledEnv, dataset.ColTemperature)
	data.AvgHumidity = meanLabel(pooledEnv, dataset.ColHumidity)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderOverview(w, &data); err != nil {
		slog.Error("overview template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

// meanLabel formats a pooled column mean for the metric cards, degrading
// to the missing marker when the mean is undefined.
func meanLabel(t *dataset.Table, col string) string {
	m, err := dataset.ColumnMean(t, col)
	if err != nil {
		return missingValue
	}
	v := m
	return fmtAvg(&v)
}

func (c *studyControllerImpl) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		renderUnavailable(w, err)
		return
	}
	data := environmentViewData(ds, r.URL.Query().Get("group"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderEnvironment(w, data); err != nil {
		slog.Error("environment template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

func (c *studyControllerImpl) handleGrowth(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		renderUnavailable(w, err)
		return
	}
	data := growthViewData(ds)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderGrowth(w, data); err != nil {
		slog.Error("growth template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
}

func (c *studyControllerImpl) handleEnvironmentPartial(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		renderUnavailable(w, err)
		return
	}
	data := environmentViewData(ds, r.URL.Query().Get("group"))
	var buf bytes.Buffer
	if err := views.RenderEnvironmentPartial(&buf, data); err != nil {
		slog.Error("environment partial render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("environment partial: write response failed", "error", err)
	}
}

func (c *studyControllerImpl) handleGrowthPartial(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		renderUnavailable(w, err)
		return
	}
	data := growthViewData(ds)
	var buf bytes.Buffer
	if err := views.RenderGrowthPartial(&buf, data); err != nil {
		slog.Error("growth partial render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("growth partial: write response failed", "error", err)
	}
}
