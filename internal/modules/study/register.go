package study

import (
	"net/http"

	"polargrow-server/internal/dataset"
	"polargrow-server/internal/modules/study/controller"
)

func RegisterFeature(mux *http.ServeMux, store *dataset.Store, dataDir string) {
	studyController := controller.NewStudyController(store, dataDir)
	studyController.RegisterRoutes(mux)
}
