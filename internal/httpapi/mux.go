package httpapi

import (
	"net/http"

	"polargrow-server/internal/dataset"
)

func NewMux(store *dataset.Store, dataDir string) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, store, dataDir)
	return mux
}
