package journal

import (
	"fmt"
	"time"
)

// Run represents one recorded manifest build.
type Run struct {
	ID               int64     `json:"id"`
	StartedAt        time.Time `json:"started_at"`
	Duration         int64     `json:"duration_ms"`
	Total            int       `json:"total"`
	Dated            int       `json:"dated"`
	Undated          int       `json:"undated"`
	ManifestChecksum string    `json:"manifest_checksum"`
}

// Record inserts a completed build run and returns its assigned ID.
func (db *DB) Record(r Run) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO runs (started_at, duration_ms, total, dated, undated, manifest_checksum)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.StartedAt.UTC(), r.Duration, r.Total, r.Dated, r.Undated, r.ManifestChecksum)
	if err != nil {
		return 0, fmt.Errorf("journal: record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first.
func (db *DB) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, started_at, duration_ms, total, dated, undated, manifest_checksum
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Duration, &r.Total, &r.Dated, &r.Undated, &r.ManifestChecksum); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest returns the most recent run, or nil if the journal is empty.
func (db *DB) Latest() (*Run, error) {
	runs, err := db.List(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
