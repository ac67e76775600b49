package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/docservice"
	"github.com/starford/jera/internal/journal"
	"github.com/starford/jera/internal/manifest"
)

// RebuildHook is called after each successful API-triggered rebuild, e.g.
// to notify SSE subscribers.
type RebuildHook func(*docservice.Summary)

// Handler holds API route handlers.
type Handler struct {
	svc       *docservice.Service
	onRebuild RebuildHook
}

// NewHandler creates a new Handler. onRebuild may be nil.
func NewHandler(svc *docservice.Service, onRebuild RebuildHook) *Handler {
	return &Handler{svc: svc, onRebuild: onRebuild}
}

// GetManifest handles GET /api/manifest. The manifest checksum doubles as
// the ETag so reload clients can cheaply detect changes.
func (h *Handler) GetManifest(w http.ResponseWriter, r *http.Request) {
	files, cs, err := h.svc.Manifest(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("manifest not generated yet"))
		} else {
			slog.Error("get manifest failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	if match := r.Header.Get("If-None-Match"); match != "" && match == `"`+cs+`"` {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	dated := manifest.CountDated(files)
	w.Header().Set("ETag", `"`+cs+`"`)
	writeJSON(w, http.StatusOK, ManifestResponse{
		Files:    files,
		Total:    len(files),
		Dated:    dated,
		Undated:  len(files) - dated,
		Checksum: cs,
	})
}

// Rebuild handles POST /api/rebuild.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Rebuild(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrDocsDirMissing) {
			writeJSON(w, http.StatusConflict, errorBody("docs directory not found"))
		} else {
			slog.Error("rebuild failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if h.onRebuild != nil {
		h.onRebuild(sum)
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.svc.History(r.Context(), limit)
	if err != nil {
		slog.Error("list runs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if runs == nil {
		runs = []journal.Run{}
	}
	writeJSON(w, http.StatusOK, RunsResponse{Runs: runs})
}
