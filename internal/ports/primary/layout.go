package primary

import "context"

// LayoutService defines the primary port for reading and editing window layouts
// outside of drag gestures.
type LayoutService interface {
	// Snapshot reads a window into the form GestureRequest expects.
	Snapshot(ctx context.Context, windowID int) (*WindowLayout, error)

	// ListWindows lists windows.
	ListWindows(ctx context.Context) ([]*Window, error)

	// CreateWindow opens a new window.
	CreateWindow(ctx context.Context) (*Window, error)

	// FocusWindow focuses a window.
	FocusWindow(ctx context.Context, windowID int) error

	// FocusedWindow returns the focused window, creating one if none exists.
	FocusedWindow(ctx context.Context) (*Window, error)

	// OpenTab adds a tab to the end of a window.
	OpenTab(ctx context.Context, req OpenTabRequest) (*Tab, error)

	// SetPinned pins or unpins a tab.
	SetPinned(ctx context.Context, tabID int, pinned bool) error

	// CreateGroup groups tabs into a new group.
	CreateGroup(ctx context.Context, req CreateGroupRequest) (int, error)

	// SetCollapsed records a group's collapsed flag.
	SetCollapsed(ctx context.Context, groupID int, collapsed bool) error

	// CreateWorkspace adds a workspace.
	CreateWorkspace(ctx context.Context, name string) (*Workspace, error)

	// ListWorkspaces lists workspaces by position.
	ListWorkspaces(ctx context.Context) ([]*Workspace, error)

	// Select replaces the selection set.
	Select(ctx context.Context, ids []int) error

	// Selection returns the selection set.
	Selection(ctx context.Context) ([]int, error)

	// ClearSelection empties the selection set.
	ClearSelection(ctx context.Context) error
}

// WindowLayout is a window's full layout.
type WindowLayout struct {
	WindowID  int
	Pinned    []Item
	Free      []Item
	Groups    []Group
	Collapsed map[int]bool

	Tabs       []*Tab // all tabs in index order
	GroupInfo  map[int]*GroupInfo
	Workspaces map[int]string // workspace id -> name
}

// Request converts the layout into a gesture request for the given identifiers.
func (l *WindowLayout) Request(activeID, overID string) GestureRequest {
	return GestureRequest{
		ActiveID:    activeID,
		OverID:      overID,
		ContainerID: l.WindowID,
		Pinned:      l.Pinned,
		Free:        l.Free,
		Groups:      l.Groups,
		Collapsed:   l.Collapsed,
	}
}

// Tab is a tab for display.
type Tab struct {
	ID          int
	WindowID    int
	Index       int
	Pinned      bool
	GroupID     int
	Title       string
	URL         string
	WorkspaceID int
}

// GroupInfo is a group's display data.
type GroupInfo struct {
	ID          int
	Title       string
	Color       string
	WorkspaceID int
}

// Window is a window for display.
type Window struct {
	ID       int
	Focused  bool
	TabCount int
}

// Workspace is a workspace for display.
type Workspace struct {
	ID       int
	Name     string
	Position int
}

// OpenTabRequest contains parameters for opening a tab.
type OpenTabRequest struct {
	WindowID int
	Title    string
	URL      string
	Pinned   bool
}

// CreateGroupRequest contains parameters for creating a group.
type CreateGroupRequest struct {
	TabIDs []int
	Title  string
	Color  string
}
