// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrMiddleOfGroup is returned by TabStore.MoveGroup when the target index falls
// inside another group's member range.
var ErrMiddleOfGroup = errors.New("cannot move a group into the middle of another group")

// NoGroup marks an ungrouped item in records.
const NoGroup = -1

// TabStore defines the secondary port for the ordered-collection store.
// Every mutation may shift the indices of other items in the same window.
type TabStore interface {
	// GetItem retrieves an item with its current index.
	GetItem(ctx context.Context, id int) (*ItemRecord, error)

	// QueryItems retrieves items matching the filter in index order.
	QueryItems(ctx context.Context, filter ItemFilter) ([]*ItemRecord, error)

	// GetGroup retrieves a group with its current index and members.
	GetGroup(ctx context.Context, id int) (*GroupRecord, error)

	// ListGroups retrieves the groups of a window in index order.
	ListGroups(ctx context.Context, windowID int) ([]*GroupRecord, error)

	// MoveItem repositions an item within its window.
	MoveItem(ctx context.Context, id, index int) error

	// MoveGroup repositions a whole group. Fails with ErrMiddleOfGroup when
	// the index falls inside another group.
	MoveGroup(ctx context.Context, groupID, index int) error

	// GroupItems adds items to a group at its current tail. groupID 0 creates
	// a new group. Returns the id of the group the items joined.
	GroupItems(ctx context.Context, ids []int, groupID int) (int, error)

	// UngroupItem removes an item from its group.
	UngroupItem(ctx context.Context, id int) error

	// SetPinned pins or unpins an item.
	SetPinned(ctx context.Context, id int, pinned bool) error

	// UpdateGroup sets a group's title and colour.
	UpdateGroup(ctx context.Context, groupID int, title, color string) error

	// CreateTab appends a new tab to a window (to the pinned strip when pinned).
	CreateTab(ctx context.Context, record *ItemRecord) error
}

// ItemRecord represents an item as stored in persistence.
type ItemRecord struct {
	ID          int
	WindowID    int
	Index       int
	Pinned      bool
	GroupID     int // NoGroup when ungrouped
	Title       string
	URL         string
	WorkspaceID int // 0 when unassigned
}

// GroupRecord represents a group as stored in persistence.
type GroupRecord struct {
	ID          int
	WindowID    int
	Index       int // index of the first member
	Title       string
	Color       string
	WorkspaceID int
	MemberIDs   []int
}

// ItemFilter contains filter options for querying items.
type ItemFilter struct {
	WindowID int // 0 for all windows
	GroupID  int // 0 for any group; NoGroup for ungrouped only
	Pinned   *bool
}

// WindowStore defines the secondary port for window-container primitives.
type WindowStore interface {
	// CreateWindow opens a new empty window.
	CreateWindow(ctx context.Context) (*WindowRecord, error)

	// GetWindow retrieves a window by ID.
	GetWindow(ctx context.Context, id int) (*WindowRecord, error)

	// ListWindows retrieves all windows.
	ListWindows(ctx context.Context) ([]*WindowRecord, error)

	// MoveItemToWindow relocates an item to the end of another window, unpinned and ungrouped.
	MoveItemToWindow(ctx context.Context, itemID, windowID int) error

	// MoveGroupToWindow relocates a whole group to the end of another window.
	MoveGroupToWindow(ctx context.Context, groupID, windowID int) error

	// FocusWindow marks a window as the focused one.
	FocusWindow(ctx context.Context, windowID int) error
}

// WindowRecord represents a window as stored in persistence.
type WindowRecord struct {
	ID      int
	Focused bool
}

// WorkspaceStore defines the secondary port for workspace assignment.
type WorkspaceStore interface {
	// CreateWorkspace adds a workspace at the end of the workspace list.
	CreateWorkspace(ctx context.Context, name string) (*WorkspaceRecord, error)

	// ListWorkspaces retrieves workspaces by position.
	ListWorkspaces(ctx context.Context) ([]*WorkspaceRecord, error)

	// AssignToWorkspace assigns an item or group (subject "item" or "group") to a workspace.
	AssignToWorkspace(ctx context.Context, subject string, id, workspaceID int) error

	// ClearWorkspaceAssignment removes an item's or group's assignment.
	ClearWorkspaceAssignment(ctx context.Context, subject string, id int) error

	// ReorderByWorkspace re-sorts a window's free items and groups by workspace position.
	ReorderByWorkspace(ctx context.Context, windowID int) error
}

// WorkspaceRecord represents a workspace as stored in persistence.
type WorkspaceRecord struct {
	ID       int
	Name     string
	Position int
}
