// Package testutil provides shared test helpers for setting up docs
// directories and journal databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/jera/internal/journal"
	"github.com/starford/jera/internal/storage"
)

// TestJournal creates a temporary SQLite journal that is automatically cleaned up.
func TestJournal(t *testing.T) *journal.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "jera-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journal.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDocs creates a temporary docs directory with a storage.Provider.
func TestDocs(t *testing.T) (string, storage.Provider) {
	t.Helper()
	docsDir := t.TempDir()
	store, err := storage.NewFS(docsDir)
	if err != nil {
		t.Fatal(err)
	}
	return docsDir, store
}
