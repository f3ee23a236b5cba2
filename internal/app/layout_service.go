package app

import (
	"context"
	"fmt"

	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// LayoutServiceImpl implements the LayoutService interface.
type LayoutServiceImpl struct {
	tabs       secondary.TabStore
	windows    secondary.WindowStore
	workspaces secondary.WorkspaceStore
	selection  secondary.SelectionStore
	view       secondary.ViewStateStore
}

// NewLayoutService creates a new LayoutService implementation.
func NewLayoutService(
	tabs secondary.TabStore,
	windows secondary.WindowStore,
	workspaces secondary.WorkspaceStore,
	selection secondary.SelectionStore,
	view secondary.ViewStateStore,
) *LayoutServiceImpl {
	return &LayoutServiceImpl{
		tabs:       tabs,
		windows:    windows,
		workspaces: workspaces,
		selection:  selection,
		view:       view,
	}
}

// Snapshot reads a window into pinned, free and grouped partitions.
func (s *LayoutServiceImpl) Snapshot(ctx context.Context, windowID int) (*primary.WindowLayout, error) {
	items, err := s.tabs.QueryItems(ctx, secondary.ItemFilter{WindowID: windowID})
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	groups, err := s.tabs.ListGroups(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	collapsed, err := s.view.Collapsed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read collapsed groups: %w", err)
	}
	workspaces, err := s.workspaces.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	layout := &primary.WindowLayout{
		WindowID:   windowID,
		Collapsed:  make(map[int]bool),
		GroupInfo:  make(map[int]*primary.GroupInfo, len(groups)),
		Workspaces: make(map[int]string, len(workspaces)),
	}
	for _, ws := range workspaces {
		layout.Workspaces[ws.ID] = ws.Name
	}

	members := make(map[int][]primary.Item)
	for _, r := range items {
		it := primary.Item{ID: r.ID, Index: r.Index, Pinned: r.Pinned, GroupID: r.GroupID}
		switch {
		case r.Pinned:
			layout.Pinned = append(layout.Pinned, it)
		case r.GroupID != secondary.NoGroup:
			members[r.GroupID] = append(members[r.GroupID], it)
		default:
			layout.Free = append(layout.Free, it)
		}
		layout.Tabs = append(layout.Tabs, recordToTab(r))
	}

	for _, g := range groups {
		layout.Groups = append(layout.Groups, primary.Group{
			ID:      g.ID,
			Index:   g.Index,
			Members: members[g.ID],
		})
		layout.GroupInfo[g.ID] = &primary.GroupInfo{
			ID:          g.ID,
			Title:       g.Title,
			Color:       g.Color,
			WorkspaceID: g.WorkspaceID,
		}
		if collapsed[g.ID] {
			layout.Collapsed[g.ID] = true
		}
	}

	return layout, nil
}

// ListWindows lists windows with their tab counts.
func (s *LayoutServiceImpl) ListWindows(ctx context.Context) ([]*primary.Window, error) {
	records, err := s.windows.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	windows := make([]*primary.Window, 0, len(records))
	for _, r := range records {
		items, err := s.tabs.QueryItems(ctx, secondary.ItemFilter{WindowID: r.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to query items: %w", err)
		}
		windows = append(windows, &primary.Window{ID: r.ID, Focused: r.Focused, TabCount: len(items)})
	}
	return windows, nil
}

// CreateWindow opens a new window.
func (s *LayoutServiceImpl) CreateWindow(ctx context.Context) (*primary.Window, error) {
	r, err := s.windows.CreateWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	return &primary.Window{ID: r.ID, Focused: r.Focused}, nil
}

// FocusWindow focuses a window.
func (s *LayoutServiceImpl) FocusWindow(ctx context.Context, windowID int) error {
	if _, err := s.windows.GetWindow(ctx, windowID); err != nil {
		return fmt.Errorf("window %d not found: %w", windowID, err)
	}
	return s.windows.FocusWindow(ctx, windowID)
}

// FocusedWindow returns the focused window. With no focused window the first
// one is focused, and with no windows at all a new one is created.
func (s *LayoutServiceImpl) FocusedWindow(ctx context.Context) (*primary.Window, error) {
	windows, err := s.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if w.Focused {
			return w, nil
		}
	}
	if len(windows) == 0 {
		w, err := s.CreateWindow(ctx)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	w := windows[0]
	if err := s.windows.FocusWindow(ctx, w.ID); err != nil {
		return nil, fmt.Errorf("failed to focus window: %w", err)
	}
	w.Focused = true
	return w, nil
}

// OpenTab adds a tab to the end of a window.
func (s *LayoutServiceImpl) OpenTab(ctx context.Context, req primary.OpenTabRequest) (*primary.Tab, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("tab URL cannot be empty")
	}
	record := &secondary.ItemRecord{
		WindowID: req.WindowID,
		Pinned:   req.Pinned,
		GroupID:  secondary.NoGroup,
		Title:    req.Title,
		URL:      req.URL,
	}
	if err := s.tabs.CreateTab(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	return recordToTab(record), nil
}

// SetPinned pins or unpins a tab.
func (s *LayoutServiceImpl) SetPinned(ctx context.Context, tabID int, pinned bool) error {
	return s.tabs.SetPinned(ctx, tabID, pinned)
}

// CreateGroup groups tabs into a new group.
func (s *LayoutServiceImpl) CreateGroup(ctx context.Context, req primary.CreateGroupRequest) (int, error) {
	if len(req.TabIDs) == 0 {
		return 0, fmt.Errorf("a group needs at least one tab")
	}
	gid, err := s.tabs.GroupItems(ctx, req.TabIDs, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to create group: %w", err)
	}
	if err := s.tabs.UpdateGroup(ctx, gid, req.Title, req.Color); err != nil {
		return 0, fmt.Errorf("failed to update group: %w", err)
	}
	return gid, nil
}

// SetCollapsed records a group's collapsed flag.
func (s *LayoutServiceImpl) SetCollapsed(ctx context.Context, groupID int, collapsed bool) error {
	if _, err := s.tabs.GetGroup(ctx, groupID); err != nil {
		return fmt.Errorf("group %d not found: %w", groupID, err)
	}
	return s.view.SetCollapsed(ctx, groupID, collapsed)
}

// CreateWorkspace adds a workspace.
func (s *LayoutServiceImpl) CreateWorkspace(ctx context.Context, name string) (*primary.Workspace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace name cannot be empty")
	}
	r, err := s.workspaces.CreateWorkspace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &primary.Workspace{ID: r.ID, Name: r.Name, Position: r.Position}, nil
}

// ListWorkspaces lists workspaces by position.
func (s *LayoutServiceImpl) ListWorkspaces(ctx context.Context) ([]*primary.Workspace, error) {
	records, err := s.workspaces.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	out := make([]*primary.Workspace, 0, len(records))
	for _, r := range records {
		out = append(out, &primary.Workspace{ID: r.ID, Name: r.Name, Position: r.Position})
	}
	return out, nil
}

// Select replaces the selection set.
func (s *LayoutServiceImpl) Select(ctx context.Context, ids []int) error {
	for _, id := range ids {
		if _, err := s.tabs.GetItem(ctx, id); err != nil {
			return fmt.Errorf("tab %d not found: %w", id, err)
		}
	}
	var last int
	if len(ids) > 0 {
		last = ids[len(ids)-1]
	}
	return s.selection.SetSelection(ctx, &secondary.SelectionRecord{IDs: ids, LastID: last})
}

// Selection returns the selection set.
func (s *LayoutServiceImpl) Selection(ctx context.Context) ([]int, error) {
	sel, err := s.selection.GetSelection(ctx)
	if err != nil {
		return nil, err
	}
	return sel.IDs, nil
}

// ClearSelection empties the selection set.
func (s *LayoutServiceImpl) ClearSelection(ctx context.Context) error {
	return s.selection.ClearSelection(ctx)
}

func recordToTab(r *secondary.ItemRecord) *primary.Tab {
	return &primary.Tab{
		ID:          r.ID,
		WindowID:    r.WindowID,
		Index:       r.Index,
		Pinned:      r.Pinned,
		GroupID:     r.GroupID,
		Title:       r.Title,
		URL:         r.URL,
		WorkspaceID: r.WorkspaceID,
	}
}

var _ primary.LayoutService = (*LayoutServiceImpl)(nil)
