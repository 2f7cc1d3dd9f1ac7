package httpapi

import (
	"net/http"
	"time"

	"shoresquad-server/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler wraps mux with the middleware chain, outermost first: request
// logging, panic recovery, CORS for the JSON API.
func NewHandler(cfg config.Config, mux *http.ServeMux) http.Handler {
	return requestLogger(recoverer(apiCORS(cfg.CORSAllowedOrigins, mux)))
}
