// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is created through db.Open, so tests always run against
// the real migrations. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/tabdeck/internal/adapters/sqlite"
	"github.com/example/tabdeck/internal/db"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// setupTestDB creates a migrated in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(db.MemoryPath)
	require.NoError(t, err, "failed to open test db")

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedWindow creates a window and returns its ID.
func seedWindow(t *testing.T, conn *sql.DB) int {
	t.Helper()
	w, err := sqlite.NewWindowRepository(conn).CreateWindow(context.Background())
	require.NoError(t, err, "failed to seed window")
	return w.ID
}

// seedTabs appends one tab per entry to a window and returns their IDs in order.
// Entries are "p" for pinned and "f" for free.
func seedTabs(t *testing.T, conn *sql.DB, windowID int, kinds ...string) []int {
	t.Helper()
	repo := sqlite.NewTabRepository(conn)
	ids := make([]int, 0, len(kinds))
	for i, kind := range kinds {
		record := &secondary.ItemRecord{
			WindowID: windowID,
			Pinned:   kind == "p",
			Title:    "tab",
			URL:      "https://example.com/" + string(rune('a'+i)),
		}
		require.NoError(t, repo.CreateTab(context.Background(), record), "failed to seed tab")
		ids = append(ids, record.ID)
	}
	return ids
}

// seedGroup groups the given tabs into a new group and returns its ID.
func seedGroup(t *testing.T, conn *sql.DB, ids ...int) int {
	t.Helper()
	gid, err := sqlite.NewTabRepository(conn).GroupItems(context.Background(), ids, 0)
	require.NoError(t, err, "failed to seed group")
	return gid
}

// windowOrder returns a window's tab IDs in position order.
func windowOrder(t *testing.T, conn *sql.DB, windowID int) []int {
	t.Helper()
	items, err := sqlite.NewTabRepository(conn).QueryItems(context.Background(), secondary.ItemFilter{WindowID: windowID})
	require.NoError(t, err)
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
