package secondary

import "context"

// SelectionStore defines the secondary port for the externally owned selection set.
type SelectionStore interface {
	// GetSelection returns the current selection; empty when nothing is selected.
	GetSelection(ctx context.Context) (*SelectionRecord, error)

	// SetSelection replaces the selection.
	SetSelection(ctx context.Context, sel *SelectionRecord) error

	// ClearSelection empties the selection.
	ClearSelection(ctx context.Context) error
}

// SelectionRecord represents the selection set.
type SelectionRecord struct {
	IDs    []int
	LastID int
}

// ViewStateStore defines the secondary port for per-group view flags owned by the host.
type ViewStateStore interface {
	// Collapsed returns the ids of collapsed groups.
	Collapsed(ctx context.Context) (map[int]bool, error)

	// SetCollapsed records a group's collapsed flag.
	SetCollapsed(ctx context.Context, groupID int, collapsed bool) error
}
