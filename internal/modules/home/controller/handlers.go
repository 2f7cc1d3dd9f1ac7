package controller

import (
	"io"
	"net/http"

	statscontroller "shoresquad-server/internal/modules/stats/controller"
	"shoresquad-server/internal/utils"
	"shoresquad-server/internal/views"
)

func (c *homeControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	beaches, err := c.deps.Beaches.List(ctx, query)
	if err != nil {
		c.logger.Error("index: list beaches failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load beaches")
		return
	}
	crews, err := c.deps.Crews.List(ctx)
	if err != nil {
		c.logger.Error("index: list crews failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load crews")
		return
	}
	stats, err := c.deps.Stats.Current(ctx)
	if err != nil {
		c.logger.Error("index: read stats failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	// The map always shows every beach, whatever the list filter.
	allBeaches := beaches
	if query != "" {
		if allBeaches, err = c.deps.Beaches.List(ctx, ""); err != nil {
			c.logger.Error("index: list beaches for map failed", "error", err)
			utils.WriteError(w, http.StatusInternalServerError, "failed to load beaches")
			return
		}
	}
	mapData, _ := c.deps.Maps.Build(allBeaches)

	panel, loaded := c.deps.Weather.Panel()

	data := &views.IndexData{
		Weather: views.WeatherData{Loaded: loaded, Panel: panel},
		Beaches: views.BeachesData{Query: query, Beaches: beaches},
		Crews:   views.CrewsData{Crews: crews},
		Stats:   statscontroller.ToView(stats),
		Map:     mapData,
	}
	err = utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderIndex(out, data)
	})
	if err != nil {
		c.logger.Error("index template render failed", "error", err)
	}
}
