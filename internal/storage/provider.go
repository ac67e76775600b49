package storage

import "time"

// DocInfo describes one HTML document found in the docs directory.
type DocInfo struct {
	Name    string // filename only, no path
	Size    int64
	ModTime time.Time
}

// Provider abstracts the docs directory so services can be tested against
// alternative implementations.
type Provider interface {
	ListHTML() ([]DocInfo, error)
	ReadManifest(name string) ([]byte, error)
	WriteManifest(name string, data []byte) error
	Root() string
}
