// Package docservice coordinates scanning, manifest generation, and the
// build journal. CLI, API, watcher, and MCP all rebuild through this one
// path so every entry point produces identical output.
package docservice

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/starford/jera/internal/checksum"
	"github.com/starford/jera/internal/journal"
	"github.com/starford/jera/internal/manifest"
	"github.com/starford/jera/internal/storage"
)

// Summary describes the outcome of one manifest build.
type Summary struct {
	ManifestPath string   `json:"manifest_path"`
	Ordered      []string `json:"ordered"`
	Total        int      `json:"total"`
	Dated        int      `json:"dated"`
	Undated      int      `json:"undated"`
	Checksum     string   `json:"checksum"`
	Duration     int64    `json:"duration_ms"`
	RunID        int64    `json:"run_id,omitempty"`
}

// Newest returns the first filename in manifest order, or "" when empty.
func (s *Summary) Newest() string {
	if len(s.Ordered) == 0 {
		return ""
	}
	return s.Ordered[0]
}

// Oldest returns the last filename in manifest order, or "" when empty.
func (s *Summary) Oldest() string {
	if len(s.Ordered) == 0 {
		return ""
	}
	return s.Ordered[len(s.Ordered)-1]
}

// Service coordinates storage, manifest building, and journal operations.
type Service struct {
	store        storage.Provider
	db           *journal.DB // optional; nil disables run recording
	manifestName string
}

// NewService creates a new document service. db may be nil when no journal
// is configured.
func NewService(store storage.Provider, db *journal.DB, manifestName string) *Service {
	return &Service{store: store, db: db, manifestName: manifestName}
}

// Rebuild performs one full manifest generation: scan the docs directory,
// classify and order every HTML filename, and overwrite the manifest file.
// The scan is always complete and the manifest is always fully rewritten;
// nothing carries over from a previous run.
func (s *Service) Rebuild(_ context.Context) (*Summary, error) {
	start := time.Now()

	docs, err := s.store.ListHTML()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	ordered := manifest.Order(names)
	dated := manifest.CountDated(names)

	data, err := manifest.Encode(ordered)
	if err != nil {
		return nil, fmt.Errorf("docservice: encode manifest: %w", err)
	}
	if err := s.store.WriteManifest(s.manifestName, data); err != nil {
		return nil, err
	}

	sum := &Summary{
		ManifestPath: filepath.Join(s.store.Root(), s.manifestName),
		Ordered:      ordered,
		Total:        len(ordered),
		Dated:        dated,
		Undated:      len(ordered) - dated,
		Checksum:     checksum.Sum(data),
		Duration:     time.Since(start).Milliseconds(),
	}

	if s.db != nil {
		id, err := s.db.Record(journal.Run{
			StartedAt:        start,
			Duration:         sum.Duration,
			Total:            sum.Total,
			Dated:            sum.Dated,
			Undated:          sum.Undated,
			ManifestChecksum: sum.Checksum,
		})
		if err != nil {
			return nil, fmt.Errorf("docservice: record run: %w", err)
		}
		sum.RunID = id
	}

	return sum, nil
}

// Manifest returns the current manifest file's ordered list and checksum.
// Returns apperr.ErrNotFound (wrapped) when no manifest has been generated.
func (s *Service) Manifest(_ context.Context) ([]string, string, error) {
	data, err := s.store.ReadManifest(s.manifestName)
	if err != nil {
		return nil, "", err
	}
	ordered, err := manifest.Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("docservice: decode manifest: %w", err)
	}
	return ordered, checksum.Sum(data), nil
}

// History returns the most recent journal runs, newest first. An empty
// slice is returned when no journal is configured.
func (s *Service) History(_ context.Context, limit int) ([]journal.Run, error) {
	if s.db == nil {
		return []journal.Run{}, nil
	}
	return s.db.List(limit)
}
