package crews

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/crews/controller"
	"shoresquad-server/internal/modules/crews/service"
	"shoresquad-server/internal/store"
)

// RegisterFeature wires the crew routes. publisher may be nil when crew
// events are not broadcast.
func RegisterFeature(mux *http.ServeMux, repo store.Repository, publisher service.Publisher, logger *slog.Logger) *service.Service {
	crewService := service.NewService(repo, publisher, logger)
	crewController := controller.NewCrewController(crewService, logger)
	crewController.RegisterRoutes(mux)
	return crewService
}
