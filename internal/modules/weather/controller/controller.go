package controller

import (
	"context"
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/weather/types"
)

// WeatherService is the cached weather panel and its refresh trigger.
type WeatherService interface {
	Panel() (types.Panel, bool)
	Refresh(ctx context.Context) types.Panel
}

type WeatherController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type weatherControllerImpl struct {
	service WeatherService
	logger  *slog.Logger
}

func NewWeatherController(service WeatherService, logger *slog.Logger) WeatherController {
	if logger == nil {
		logger = slog.Default()
	}
	return &weatherControllerImpl{service: service, logger: logger}
}

func (c *weatherControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /partials/weather", c.handleWeatherPartial)
	mux.HandleFunc("GET /api/v1/weather", c.handleWeather)
	mux.HandleFunc("POST /api/v1/weather/refresh", c.handleRefresh)
}
