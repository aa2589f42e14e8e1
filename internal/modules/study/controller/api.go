package controller

import (
	"net/http"

	"polargrow-server/internal/dataset"
	"polargrow-server/internal/modules/study/types"
	"polargrow-server/internal/utils"
)

func (c *studyControllerImpl) handleGroups(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	out := make([]types.Group, 0, len(ds.Groups))
	for _, g := range ds.Groups {
		grp := types.Group{Name: g, Color: colorForGroup(ds.Groups, g)}
		if target, ok := c.store.Targets().Lookup(g); ok {
			grp.ECTarget = &target
		}
		out = append(out, grp)
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *studyControllerImpl) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, ds.Summaries)
}

func (c *studyControllerImpl) handleEnvironmentRows(w http.ResponseWriter, r *http.Request) {
	c.handleTableRows(w, r, func(ds *dataset.Dataset) map[string]*dataset.Table {
		return ds.Environment
	})
}

func (c *studyControllerImpl) handleGrowthRows(w http.ResponseWriter, r *http.Request) {
	c.handleTableRows(w, r, func(ds *dataset.Dataset) map[string]*dataset.Table {
		return ds.Growth
	})
}

func (c *studyControllerImpl) handleTableRows(w http.ResponseWriter, r *http.Request, pick func(*dataset.Dataset) map[string]*dataset.Table) {
	ds, err := c.dataset()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	group := dataset.NormalizeLabel(r.PathValue("group"))
	t, ok := pick(ds)[group]
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "unknown group: "+group)
		return
	}
	utils.WriteJSON(w, http.StatusOK, t.Rows())
}
