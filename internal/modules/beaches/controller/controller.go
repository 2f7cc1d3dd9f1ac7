package controller

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/beaches/service"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

type MapBuilder interface {
	Build(beaches []store.Beach) (*views.MapData, bool)
}

type BeachController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type beachControllerImpl struct {
	service service.BeachService
	maps    MapBuilder
	logger  *slog.Logger
}

func NewBeachController(service service.BeachService, maps MapBuilder, logger *slog.Logger) BeachController {
	if logger == nil {
		logger = slog.Default()
	}
	return &beachControllerImpl{service: service, maps: maps, logger: logger}
}

func (c *beachControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /partials/beaches", c.handleBeachesPartial)
	mux.HandleFunc("GET /api/v1/beaches", c.handleBeaches)
	mux.HandleFunc("POST /api/v1/beaches/{id}/select", c.handleSelect)
	mux.HandleFunc("GET /api/v1/map/markers", c.handleMarkers)
	mux.HandleFunc("POST /api/v1/location", c.handleLocation)
}
