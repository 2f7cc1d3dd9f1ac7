package beaches

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/beaches/controller"
	"shoresquad-server/internal/modules/beaches/mapview"
	"shoresquad-server/internal/modules/beaches/service"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

// RegisterFeature wires the beach list, map markers and location status
// routes. The returned service and map renderer are shared with the page.
func RegisterFeature(mux *http.ServeMux, repo store.Repository, logger *slog.Logger) (service.BeachService, *mapview.Renderer) {
	beachService := service.NewBeachService(repo)
	maps := mapview.NewRenderer(views.Templates(), logger.With("component", "mapview"))
	beachController := controller.NewBeachController(beachService, maps, logger)
	beachController.RegisterRoutes(mux)
	return beachService, maps
}
