package controller

import (
	"io"
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/stats/service"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/utils"
	"shoresquad-server/internal/views"
)

type StatsController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type statsControllerImpl struct {
	service service.StatsService
	logger  *slog.Logger
}

func NewStatsController(service service.StatsService, logger *slog.Logger) StatsController {
	if logger == nil {
		logger = slog.Default()
	}
	return &statsControllerImpl{service: service, logger: logger}
}

func (c *statsControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /partials/stats", c.handleStatsPartial)
	mux.HandleFunc("GET /api/v1/stats", c.handleStats)
}

func (c *statsControllerImpl) handleStatsPartial(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Current(r.Context())
	if err != nil {
		c.logger.Error("stats partial: read failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	err = utils.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
		return views.RenderStats(out, ToView(stats))
	})
	if err != nil {
		c.logger.Error("stats partial render failed", "error", err)
	}
}

func (c *statsControllerImpl) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Current(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}

func ToView(s store.Stats) views.StatsData {
	return views.StatsData{Cleanups: s.Cleanups, Volunteers: s.Volunteers, Trash: s.Trash, Crews: s.Crews}
}
