package controller

import (
	"context"
	"log/slog"
	"net/http"

	"shoresquad-server/internal/modules/crews/service"
	"shoresquad-server/internal/store"
)

type CrewService interface {
	List(ctx context.Context) ([]store.Crew, error)
	Get(ctx context.Context, id int) (store.Crew, error)
	Create(ctx context.Context, n service.NewCrew) (store.Crew, error)
	Join(ctx context.Context, id int) (store.Crew, error)
}

type CrewController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type crewControllerImpl struct {
	service CrewService
	logger  *slog.Logger
}

func NewCrewController(service CrewService, logger *slog.Logger) CrewController {
	if logger == nil {
		logger = slog.Default()
	}
	return &crewControllerImpl{service: service, logger: logger}
}

func (c *crewControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /partials/crews", c.handleCrewsPartial)
	mux.HandleFunc("GET /api/v1/crews", c.handleCrews)
	mux.HandleFunc("POST /api/v1/crews", c.handleCreate)
	mux.HandleFunc("GET /api/v1/crews/{id}", c.handleDetails)
	mux.HandleFunc("POST /api/v1/crews/{id}/join", c.handleJoin)
}
