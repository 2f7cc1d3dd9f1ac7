package stats

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/stats/controller"
	"shoresquad-server/internal/modules/stats/service"
	"shoresquad-server/internal/store"
)

func RegisterFeature(mux *http.ServeMux, repo store.Repository, logger *slog.Logger) service.StatsService {
	statsService := service.NewStatsService(repo)
	statsController := controller.NewStatsController(statsService, logger)
	statsController.RegisterRoutes(mux)
	return statsService
}
