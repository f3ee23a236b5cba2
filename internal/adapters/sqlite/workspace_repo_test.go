package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tabdeck/internal/adapters/sqlite"
)

func TestWorkspaceRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkspaceRepository(db)
	ctx := context.Background()

	work, err := repo.CreateWorkspace(ctx, "work")
	require.NoError(t, err)
	home, err := repo.CreateWorkspace(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, 0, work.Position)
	assert.Equal(t, 1, home.Position)

	list, err := repo.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "work", list[0].Name)
	assert.Equal(t, "home", list[1].Name)

	_, err = repo.CreateWorkspace(ctx, "work")
	assert.Error(t, err, "names are unique")
}

func TestWorkspaceRepository_Assignments(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkspaceRepository(db)
	tabs := sqlite.NewTabRepository(db)
	ctx := context.Background()
	w := seedWindow(t, db)
	ids := seedTabs(t, db, w, "f", "f")
	gid := seedGroup(t, db, ids[1])
	work, err := repo.CreateWorkspace(ctx, "work")
	require.NoError(t, err)
	home, err := repo.CreateWorkspace(ctx, "home")
	require.NoError(t, err)

	t.Run("assign replaces earlier assignment", func(t *testing.T) {
		require.NoError(t, repo.AssignToWorkspace(ctx, "item", ids[0], work.ID))
		require.NoError(t, repo.AssignToWorkspace(ctx, "item", ids[0], home.ID))

		got, err := tabs.GetItem(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, home.ID, got.WorkspaceID)
	})

	t.Run("group assignment", func(t *testing.T) {
		require.NoError(t, repo.AssignToWorkspace(ctx, "group", gid, work.ID))

		group, err := tabs.GetGroup(ctx, gid)
		require.NoError(t, err)
		assert.Equal(t, work.ID, group.WorkspaceID)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.ClearWorkspaceAssignment(ctx, "item", ids[0]))

		got, err := tabs.GetItem(ctx, ids[0])
		require.NoError(t, err)
		assert.Zero(t, got.WorkspaceID)
	})

	t.Run("unknown subject", func(t *testing.T) {
		assert.Error(t, repo.AssignToWorkspace(ctx, "window", w, work.ID))
		assert.Error(t, repo.ClearWorkspaceAssignment(ctx, "window", w))
	})
}

func TestWorkspaceRepository_ReorderByWorkspace(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkspaceRepository(db)
	ctx := context.Background()
	w := seedWindow(t, db)
	ids := seedTabs(t, db, w, "p", "f", "f", "f", "f")
	pin, a, b, c, d := ids[0], ids[1], ids[2], ids[3], ids[4]
	gid := seedGroup(t, db, c, d)

	work, err := repo.CreateWorkspace(ctx, "work")
	require.NoError(t, err)
	home, err := repo.CreateWorkspace(ctx, "home")
	require.NoError(t, err)
	require.NoError(t, repo.AssignToWorkspace(ctx, "item", b, home.ID))
	require.NoError(t, repo.AssignToWorkspace(ctx, "group", gid, work.ID))

	require.NoError(t, repo.ReorderByWorkspace(ctx, w))

	// work group first, then home tab, unassigned last; pinned strip untouched
	assert.Equal(t, []int{pin, c, d, b, a}, windowOrder(t, db, w))

	assert.Error(t, repo.ReorderByWorkspace(ctx, 999))
}
