package home

import (
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/home/controller"
)

func RegisterFeature(mux *http.ServeMux, deps controller.Deps, logger *slog.Logger) {
	homeController := controller.NewHomeController(deps, logger)
	homeController.RegisterRoutes(mux)
}
