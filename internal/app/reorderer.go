package app

import (
	"context"
	"sync"
	"time"

	"github.com/example/tabdeck/internal/ports/secondary"
)

// DefaultReorderDelay coalesces bursts of workspace assignments into one re-sort.
const DefaultReorderDelay = 250 * time.Millisecond

// WorkspaceReorderer debounces ReorderByWorkspace calls per window.
type WorkspaceReorderer struct {
	store secondary.WorkspaceStore
	sink  secondary.EventSink
	delay time.Duration

	mu      sync.Mutex
	pending map[int]*time.Timer
}

// NewWorkspaceReorderer creates a reorderer that waits delay after the last
// Schedule for a window before re-sorting it.
func NewWorkspaceReorderer(store secondary.WorkspaceStore, sink secondary.EventSink, delay time.Duration) *WorkspaceReorderer {
	return &WorkspaceReorderer{
		store:   store,
		sink:    sink,
		delay:   delay,
		pending: make(map[int]*time.Timer),
	}
}

// Schedule (re)arms the timer for a window.
func (r *WorkspaceReorderer) Schedule(windowID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.pending[windowID]; ok {
		t.Stop()
	}
	r.pending[windowID] = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		delete(r.pending, windowID)
		r.mu.Unlock()
		r.reorder(context.Background(), windowID)
	})
}

// Flush runs every pending re-sort now. Used before the process exits.
func (r *WorkspaceReorderer) Flush(ctx context.Context) {
	r.mu.Lock()
	var windows []int
	for id, t := range r.pending {
		if t.Stop() {
			windows = append(windows, id)
		}
		delete(r.pending, id)
	}
	r.mu.Unlock()

	for _, id := range windows {
		r.reorder(ctx, id)
	}
}

// Pending reports how many windows are waiting for a re-sort.
func (r *WorkspaceReorderer) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *WorkspaceReorderer) reorder(ctx context.Context, windowID int) {
	if err := r.store.ReorderByWorkspace(ctx, windowID); err != nil {
		r.sink.Record(ctx, "workspace.reorder_failed", map[string]any{
			"window_id": windowID,
			"error":     err.Error(),
		})
		return
	}
	r.sink.Record(ctx, "workspace.reordered", map[string]any{"window_id": windowID})
}

var _ ReorderScheduler = (*WorkspaceReorderer)(nil)
