package database

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// SetupTestSQLite opens an in-memory SQLite database that is closed when the
// test ends.
func SetupTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := OpenSQLite(ctx, MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})
	return db
}
