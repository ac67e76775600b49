// Package storage provides filesystem access to the scanned docs directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/jera/internal/apperr"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the docs directory
}

// NewFS creates a new FS provider rooted at the given directory. The
// directory must already exist; a missing directory is the one recognized
// failure mode and maps to apperr.ErrDocsDirMissing.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: %w: %s", apperr.ErrDocsDirMissing, root)
		}
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute docs directory path.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a filename against the docs root and rejects anything
// that is not a plain entry directly inside it.
func (f *FS) safePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty filename")
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || cleaned != filepath.Base(cleaned) {
		return "", fmt.Errorf("storage: filename escapes docs dir: %s", name)
	}
	return filepath.Join(f.root, cleaned), nil
}

// ListHTML returns metadata for every .html entry directly inside the docs
// directory. The scan is non-recursive and the extension match is
// case-sensitive.
func (f *FS) ListHTML() ([]DocInfo, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: %w: %s", apperr.ErrDocsDirMissing, f.root)
		}
		return nil, fmt.Errorf("storage: list: %w", err)
	}

	var out []DocInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Entry vanished between ReadDir and Stat; treat as absent.
			continue
		}
		out = append(out, DocInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

// ReadManifest returns the raw bytes of the manifest file, or
// apperr.ErrNotFound if it has not been generated yet.
func (f *FS) ReadManifest(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: manifest %s: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// WriteManifest atomically writes the manifest via a temp file, fsync, and
// rename, so readers never observe a partially written file.
func (f *FS) WriteManifest(name string, data []byte) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".jera-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
