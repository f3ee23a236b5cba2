package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/tabdeck/internal/ports/secondary"
)

// countingWorkspaceStore counts ReorderByWorkspace calls per window.
type countingWorkspaceStore struct {
	secondary.WorkspaceStore

	mu     sync.Mutex
	counts map[int]int
	err    error
}

func newCountingWorkspaceStore() *countingWorkspaceStore {
	return &countingWorkspaceStore{counts: make(map[int]int)}
}

func (c *countingWorkspaceStore) ReorderByWorkspace(ctx context.Context, windowID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[windowID]++
	return c.err
}

func (c *countingWorkspaceStore) count(windowID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[windowID]
}

func TestWorkspaceReorderer_FlushRunsPendingOnce(t *testing.T) {
	store := newCountingWorkspaceStore()
	sink := &recordingSink{}
	r := NewWorkspaceReorderer(store, sink, time.Hour)

	r.Schedule(1)
	r.Schedule(1)
	r.Schedule(2)
	if r.Pending() != 2 {
		t.Fatalf("expected 2 pending windows, got %d", r.Pending())
	}

	r.Flush(context.Background())

	if store.count(1) != 1 || store.count(2) != 1 {
		t.Errorf("expected one reorder per window, got %v", store.counts)
	}
	if r.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", r.Pending())
	}
	if !sink.has("workspace.reordered") {
		t.Error("expected workspace.reordered event")
	}
}

func TestWorkspaceReorderer_Debounces(t *testing.T) {
	store := newCountingWorkspaceStore()
	r := NewWorkspaceReorderer(store, &recordingSink{}, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		r.Schedule(1)
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.count(1) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	if n := store.count(1); n != 1 {
		t.Errorf("expected exactly one reorder, got %d", n)
	}
}

func TestWorkspaceReorderer_RecordsFailure(t *testing.T) {
	store := newCountingWorkspaceStore()
	store.err = errors.New("window closed")
	sink := &recordingSink{}
	r := NewWorkspaceReorderer(store, sink, time.Hour)

	r.Schedule(3)
	r.Flush(context.Background())

	if !sink.has("workspace.reorder_failed") {
		t.Error("expected workspace.reorder_failed event")
	}
}
