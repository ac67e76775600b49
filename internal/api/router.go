package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jera/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// onRebuild, if non-nil, runs after each successful API-triggered rebuild.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler, onRebuild RebuildHook) chi.Router {
	h := NewHandler(svc, onRebuild)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/manifest", h.GetManifest)
	r.Post("/rebuild", h.Rebuild)
	r.Get("/runs", h.ListRuns)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
