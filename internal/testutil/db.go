// Package testutil provides fixture builders and database helpers for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stobind/internal/infrastructure/sqlite"
)

// NewTestDB opens a migrated SQLite database in a temp directory.
// The database is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "stobind-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
