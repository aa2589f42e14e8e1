package httpapi

import (
	"log/slog"
	"net/http"

	"polargrow-server/internal/dataset"
	"polargrow-server/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	store   *dataset.Store
	dataDir string
}

func NewHealthchecker(store *dataset.Store, dataDir string) healthchecker {
	return &healthcheckerImpl{store: store, dataDir: dataDir}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Load(h.dataDir)
	if err != nil {
		slog.Error("failed to check dataset availability", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "dataset unavailable")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"groups": len(ds.Groups),
	})
}

func registerHealthcheck(mux *http.ServeMux, store *dataset.Store, dataDir string) {
	healthchecker := NewHealthchecker(store, dataDir)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
