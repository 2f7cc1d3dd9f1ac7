package controller

import (
	"context"
	"log/slog"
	"net/http"

	beachservice "shoresquad-server/internal/modules/beaches/service"
	statsservice "shoresquad-server/internal/modules/stats/service"
	"shoresquad-server/internal/modules/weather/types"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

type WeatherPanel interface {
	Panel() (types.Panel, bool)
}

type CrewLister interface {
	List(ctx context.Context) ([]store.Crew, error)
}

type MapBuilder interface {
	Build(beaches []store.Beach) (*views.MapData, bool)
}

// Deps are the providers the page pulls its sections from.
type Deps struct {
	Weather WeatherPanel
	Beaches beachservice.BeachService
	Maps    MapBuilder
	Crews   CrewLister
	Stats   statsservice.StatsService
}

type HomeController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type homeControllerImpl struct {
	deps   Deps
	logger *slog.Logger
}

func NewHomeController(deps Deps, logger *slog.Logger) HomeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &homeControllerImpl{deps: deps, logger: logger}
}

func (c *homeControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleIndex)
}
