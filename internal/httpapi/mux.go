package httpapi

import (
	"database/sql"
	"net/http"
)

// NewMux returns the base router with the health probe and static assets.
// Feature modules register their own routes on it.
func NewMux(db *sql.DB, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	registerStatic(mux, staticDir)
	return mux
}

func registerStatic(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		return
	}
	fileServer := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fileServer))
}
