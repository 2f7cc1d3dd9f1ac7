package weather

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/weather/controller"
)

func RegisterFeature(mux *http.ServeMux, service controller.WeatherService, logger *slog.Logger) {
	weatherController := controller.NewWeatherController(service, logger)
	weatherController.RegisterRoutes(mux)
}
