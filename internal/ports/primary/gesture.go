// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces hosts use to drive the application.
package primary

import (
	"context"
	"time"
)

// GestureService defines the primary port for drag gestures.
type GestureService interface {
	// HandleGestureEnd decides and applies one drag gesture.
	HandleGestureEnd(ctx context.Context, req GestureRequest) (*GestureResult, error)
}

// Gesture outcomes.
const (
	OutcomeApplied     = "applied"
	OutcomeNoOp        = "noop"
	OutcomeSkipped     = "skipped"
	OutcomeParseFailed = "parse_failed"
	OutcomeResynced    = "resynced"
	OutcomeRouted      = "routed"
	OutcomeIgnored     = "ignored"
)

// GestureRequest contains the identifiers produced by the host and the
// snapshot the host rendered the drag against.
type GestureRequest struct {
	ActiveID    string
	OverID      string // empty when the drop had no target
	ContainerID int    // window the gesture happened in

	Pinned    []Item
	Free      []Item
	Groups    []Group
	Collapsed map[int]bool

	Callbacks Callbacks
}

// Item is an item as rendered by the host.
type Item struct {
	ID      int
	Index   int
	Pinned  bool
	GroupID int
}

// Group is a group as rendered by the host.
type Group struct {
	ID      int
	Index   int
	Members []Item
}

// Callbacks are fire-and-forget UI notifications. Nil fields are skipped.
type Callbacks struct {
	ClearDragState    func()
	MarkRecentlyMoved func(id int, d time.Duration)
	RequestReload     func()
}

// NotifyClearDragState calls ClearDragState when set.
func (c Callbacks) NotifyClearDragState() {
	if c.ClearDragState != nil {
		c.ClearDragState()
	}
}

// NotifyRecentlyMoved calls MarkRecentlyMoved when set.
func (c Callbacks) NotifyRecentlyMoved(id int, d time.Duration) {
	if c.MarkRecentlyMoved != nil {
		c.MarkRecentlyMoved(id, d)
	}
}

// NotifyReload calls RequestReload when set.
func (c Callbacks) NotifyReload() {
	if c.RequestReload != nil {
		c.RequestReload()
	}
}

// GestureResult contains the result of a gesture.
type GestureResult struct {
	GestureID string
	Outcome   string
	Reason    string
	Failure   error
	Steps     []string // store calls issued, in order
}
