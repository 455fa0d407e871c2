package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cattimer/internal/db"
)

// NewTestDB opens a migrated in-memory database closed at test end.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewFileTestDB opens a file-backed database in a temp dir. Unlike
// :memory:, every pooled connection sees the same data, which concurrent
// tests need.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "cattimer_test.db"))
	if err != nil {
		t.Fatalf("failed to create file test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// SeedRawLog writes value verbatim under the "taskLogs" key, bypassing the
// repository's encoding so tests can plant malformed data.
func SeedRawLog(t *testing.T, database *sql.DB, value string) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES ('taskLogs', ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, value)
	if err != nil {
		t.Fatalf("seeding raw log: %v", err)
	}
}
