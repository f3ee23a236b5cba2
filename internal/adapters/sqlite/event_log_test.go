package sqlite_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tabdeck/internal/adapters/sqlite"
	"github.com/example/tabdeck/internal/ctxutil"
	"github.com/example/tabdeck/internal/ports/secondary"
)

func TestGestureEventRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewGestureEventRepository(db)
	ctx := context.Background()

	for _, rec := range []*secondary.GestureEventRecord{
		{GestureID: "g1", Phase: "gesture.start"},
		{GestureID: "g1", Phase: "gesture.applied", Data: `{"steps":1}`},
		{GestureID: "g2", Phase: "gesture.noop"},
	} {
		require.NoError(t, repo.Create(ctx, rec))
		assert.NotZero(t, rec.ID)
	}

	t.Run("newest first", func(t *testing.T) {
		events, err := repo.List(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "gesture.noop", events[0].Phase)
		assert.Equal(t, "gesture.start", events[2].Phase)
		assert.Equal(t, "{}", events[2].Data)
		assert.NotEmpty(t, events[0].CreatedAt)
	})

	t.Run("filter by gesture", func(t *testing.T) {
		events, err := repo.List(ctx, "g1", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, `{"steps":1}`, events[0].Data)
	})

	t.Run("limit", func(t *testing.T) {
		events, err := repo.List(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestEventLog_Record(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewGestureEventRepository(db)
	log := sqlite.NewEventLog(repo)
	ctx, gestureID := ctxutil.WithGestureID(context.Background())

	log.Record(ctx, "gesture.applied", map[string]any{"active": "tab:2", "steps": 1})

	events, err := repo.List(context.Background(), gestureID, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "gesture.applied", events[0].Phase)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(events[0].Data), &data))
	assert.Equal(t, "tab:2", data["active"])
	assert.EqualValues(t, 1, data["steps"])
}

func TestEventLog_SwallowsWriteFailure(t *testing.T) {
	db := setupTestDB(t)
	log := sqlite.NewEventLog(sqlite.NewGestureEventRepository(db))
	db.Close()

	assert.NotPanics(t, func() {
		log.Record(context.Background(), "gesture.start", nil)
	})
}
