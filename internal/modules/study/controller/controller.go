package controller

import (
	"net/http"

	"polargrow-server/internal/dataset"
)

type studyControllerImpl struct {
	store   *dataset.Store
	dataDir string
}

func NewStudyController(store *dataset.Store, dataDir string) *studyControllerImpl {
	return &studyControllerImpl{store: store, dataDir: dataDir}
}

func (c *studyControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleOverview)
	mux.HandleFunc("GET /environment", c.handleEnvironment)
	mux.HandleFunc("GET /growth", c.handleGrowth)
	mux.HandleFunc("GET /partials/environment", c.handleEnvironmentPartial)
	mux.HandleFunc("GET /partials/growth", c.handleGrowthPartial)

	mux.HandleFunc("GET /api/groups", c.handleGroups)
	mux.HandleFunc("GET /api/summary", c.handleSummary)
	mux.HandleFunc("GET /api/environment/{group}", c.handleEnvironmentRows)
	mux.HandleFunc("GET /api/growth/{group}", c.handleGrowthRows)

	mux.HandleFunc("GET /charts/{name}", c.handleChart)

	mux.HandleFunc("GET /download/environment.csv", c.handleEnvironmentCSV)
	mux.HandleFunc("GET /download/growth.xlsx", c.handleGrowthXLSX)
}

// dataset returns the memoized dataset. A load error sticks for the process
// lifetime; handlers translate it into the unavailable notice or a JSON
// error envelope.
func (c *studyControllerImpl) dataset() (*dataset.Dataset, error) {
	return c.store.Load(c.dataDir)
}
