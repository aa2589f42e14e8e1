package controller

import (
	"log/slog"
	"net/http"

	"polargrow-server/internal/dataset"
	"polargrow-server/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Download handlers serialize the already-loaded tables; no recomputation,
// no reads from the data directory.

func (c *studyControllerImpl) handleEnvironmentCSV(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	data, err := dataset.CombinedEnvironmentCSV(ds.Environment)
	if err != nil {
		slog.Error("environment csv export failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to export")
		return
	}
	utils.WriteAttachment(w, data, "text/csv; charset=utf-8", "환경데이터_전체.csv")
}

func (c *studyControllerImpl) handleGrowthXLSX(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	data, err := dataset.CombinedGrowthXLSX(ds.Growth)
	if err != nil {
		slog.Error("growth xlsx export failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to export")
		return
	}
	utils.WriteAttachment(w, data, xlsxContentType, "생육결과_전체.xlsx")
}
