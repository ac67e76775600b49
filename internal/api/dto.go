package api

import (
	"github.com/starford/jera/internal/docservice"
	"github.com/starford/jera/internal/journal"
)

// ManifestResponse is the body of GET /api/manifest.
type ManifestResponse struct {
	Files    []string `json:"files"`
	Total    int      `json:"total"`
	Dated    int      `json:"dated"`
	Undated  int      `json:"undated"`
	Checksum string   `json:"checksum"`
}

// RebuildResponse is the body of POST /api/rebuild (the build summary).
type RebuildResponse = docservice.Summary

// RunsResponse wraps the build journal listing.
type RunsResponse struct {
	Runs []journal.Run `json:"runs"`
}
