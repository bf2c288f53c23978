package corpus

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database in a temp dir and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestDB(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=-4000")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// setupTestDBWithCorpus is a convenience helper that also stores a default corpus.
func setupTestDBWithCorpus(t *testing.T) (context.Context, *Store, Info) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	info, err := s.AddCorpus(ctx, "fish", strings.NewReader("one fish two fish. red fish blue fish."))
	if err != nil {
		t.Fatalf("setup: AddCorpus() failed: %v", err)
	}
	return ctx, s, info
}
