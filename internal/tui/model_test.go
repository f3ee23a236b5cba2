package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tabdeck/internal/ports/primary"
)

// ============================================================================
// Mocks
// ============================================================================

type mockLayoutService struct {
	layout       *primary.WindowLayout
	snapshotErr  error
	workspaces   []*primary.Workspace
	windows      []*primary.Window
	selection    []int
	collapsed    map[int]bool
	snapshots    int
	selectErr    error
	selectCalled [][]int
}

func newMockLayoutService() *mockLayoutService {
	return &mockLayoutService{
		layout:     sampleLayout(),
		workspaces: []*primary.Workspace{{ID: 3, Name: "work"}},
		windows:    []*primary.Window{{ID: 1, Focused: true, TabCount: 5}},
		collapsed:  map[int]bool{},
	}
}

func (m *mockLayoutService) Snapshot(ctx context.Context, windowID int) (*primary.WindowLayout, error) {
	m.snapshots++
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	layout := *m.layout
	layout.Collapsed = make(map[int]bool, len(m.collapsed))
	for id, c := range m.collapsed {
		layout.Collapsed[id] = c
	}
	return &layout, nil
}

func (m *mockLayoutService) ListWindows(ctx context.Context) ([]*primary.Window, error) {
	return m.windows, nil
}

func (m *mockLayoutService) CreateWindow(ctx context.Context) (*primary.Window, error) {
	return &primary.Window{ID: 99}, nil
}

func (m *mockLayoutService) FocusWindow(ctx context.Context, windowID int) error {
	return nil
}

func (m *mockLayoutService) FocusedWindow(ctx context.Context) (*primary.Window, error) {
	return m.windows[0], nil
}

func (m *mockLayoutService) OpenTab(ctx context.Context, req primary.OpenTabRequest) (*primary.Tab, error) {
	return &primary.Tab{ID: 100}, nil
}

func (m *mockLayoutService) SetPinned(ctx context.Context, tabID int, pinned bool) error {
	return nil
}

func (m *mockLayoutService) CreateGroup(ctx context.Context, req primary.CreateGroupRequest) (int, error) {
	return 1, nil
}

func (m *mockLayoutService) SetCollapsed(ctx context.Context, groupID int, collapsed bool) error {
	m.collapsed[groupID] = collapsed
	return nil
}

func (m *mockLayoutService) CreateWorkspace(ctx context.Context, name string) (*primary.Workspace, error) {
	return &primary.Workspace{ID: 1, Name: name}, nil
}

func (m *mockLayoutService) ListWorkspaces(ctx context.Context) ([]*primary.Workspace, error) {
	return m.workspaces, nil
}

func (m *mockLayoutService) Select(ctx context.Context, ids []int) error {
	if m.selectErr != nil {
		return m.selectErr
	}
	m.selectCalled = append(m.selectCalled, ids)
	m.selection = ids
	return nil
}

func (m *mockLayoutService) Selection(ctx context.Context) ([]int, error) {
	return m.selection, nil
}

func (m *mockLayoutService) ClearSelection(ctx context.Context) error {
	m.selection = nil
	return nil
}

type mockGestureService struct {
	requests []primary.GestureRequest
	result   *primary.GestureResult
	err      error
	moved    time.Duration
	reload   bool
}

func (m *mockGestureService) HandleGestureEnd(ctx context.Context, req primary.GestureRequest) (*primary.GestureResult, error) {
	m.requests = append(m.requests, req)
	defer req.Callbacks.NotifyClearDragState()
	if m.err != nil {
		return nil, m.err
	}
	if m.reload {
		req.Callbacks.NotifyReload()
	}
	if m.result.Outcome == primary.OutcomeApplied {
		req.Callbacks.NotifyRecentlyMoved(2, m.moved)
	}
	return m.result, nil
}

// ============================================================================
// Helpers
// ============================================================================

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T, want Model", next)
	return drain(t, got, cmd)
}

// drain runs a command chain to completion, expanding batches.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	if msg == nil {
		return m
	}
	if _, quit := msg.(tea.QuitMsg); quit {
		return m
	}
	return update(t, m, msg)
}

func newTestModel(t *testing.T, layout *mockLayoutService, gestures *mockGestureService) Model {
	t.Helper()
	m := New(Options{Layout: layout, Gestures: gestures, WindowID: 1, RecentlyMoved: 10 * time.Millisecond})
	return drain(t, m, m.Init())
}

// cursorTo moves the cursor onto the row with the given identifier.
func cursorTo(t *testing.T, m Model, id string) Model {
	t.Helper()
	idx := m.rowIndex(id)
	require.GreaterOrEqual(t, idx, 0, "row %s not found", id)
	m = update(t, m, keyRunes("g"))
	for i := 0; i < idx; i++ {
		m = update(t, m, keyRunes("j"))
	}
	return m
}

// ============================================================================
// Tests
// ============================================================================

func TestModel_InitLoadsLayout(t *testing.T) {
	layout := newMockLayoutService()
	layout.selection = []int{2}

	m := newTestModel(t, layout, &mockGestureService{})

	require.NotNil(t, m.snapshot)
	assert.Equal(t, "pinned-separator:1", m.rows[0].ID)
	assert.True(t, m.selected[2])
	assert.Contains(t, m.View(), "Window 1")
	assert.Contains(t, m.View(), "Research")
}

func TestModel_LoadError(t *testing.T) {
	layout := newMockLayoutService()
	layout.snapshotErr = errors.New("database is locked")

	m := newTestModel(t, layout, &mockGestureService{})

	assert.Error(t, m.loadErr)
	assert.Contains(t, m.View(), "database is locked")
}

func TestModel_PickAndDrop(t *testing.T) {
	layout := newMockLayoutService()
	gestures := &mockGestureService{
		result: &primary.GestureResult{Outcome: primary.OutcomeApplied, Steps: []string{"MoveItem(2, 3)"}},
	}
	m := newTestModel(t, layout, gestures)
	loads := layout.snapshots

	m = cursorTo(t, m, "tab:2")
	m = update(t, m, keySpace)
	require.NotNil(t, m.dragging)
	assert.Equal(t, "tab:2", m.dragging.ID)
	assert.Contains(t, m.View(), "dragging tab:2")

	m = cursorTo(t, m, "grouped:4")
	m = update(t, m, keyEnter)

	require.Len(t, gestures.requests, 1)
	req := gestures.requests[0]
	assert.Equal(t, "tab:2", req.ActiveID)
	assert.Equal(t, "grouped:4", req.OverID)
	assert.Equal(t, 1, req.ContainerID)
	assert.Len(t, req.Pinned, 1)
	assert.Len(t, req.Groups, 1)

	assert.Nil(t, m.dragging, "drag state is cleared")
	assert.Contains(t, m.status, "applied")
	assert.Greater(t, layout.snapshots, loads, "drop reloads the layout")
	assert.Empty(t, m.moved, "highlight expires")
}

func TestModel_RecentlyMovedHighlight(t *testing.T) {
	layout := newMockLayoutService()
	gestures := &mockGestureService{result: &primary.GestureResult{Outcome: primary.OutcomeApplied}, moved: time.Hour}
	m := newTestModel(t, layout, gestures)
	m = cursorTo(t, m, "tab:2")
	m = update(t, m, keySpace)
	m = cursorTo(t, m, "tab:5")

	next, cmd := m.Update(keyEnter)
	m = next.(Model)
	msg := cmd()
	next, _ = m.Update(msg)
	m = next.(Model)

	assert.Contains(t, m.moved, "tab:2")
	assert.True(t, m.isMoved(m.rows[m.rowIndex("tab:2")]))

	// expiry before the deadline keeps the mark
	m = update(t, m, movedExpiredMsg{key: "tab:2"})
	assert.Contains(t, m.moved, "tab:2")

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	m = update(t, m, movedExpiredMsg{key: "tab:2"})
	assert.NotContains(t, m.moved, "tab:2")
}

func TestModel_CancelDropsWithoutTarget(t *testing.T) {
	gestures := &mockGestureService{result: &primary.GestureResult{Outcome: primary.OutcomeNoOp, Reason: "no drop target"}}
	m := newTestModel(t, newMockLayoutService(), gestures)
	m = cursorTo(t, m, "group:7")
	m = update(t, m, keySpace)

	m = update(t, m, keyEsc)

	require.Len(t, gestures.requests, 1)
	assert.Equal(t, "group:7", gestures.requests[0].ActiveID)
	assert.Empty(t, gestures.requests[0].OverID)
	assert.Nil(t, m.dragging)
	assert.Contains(t, m.status, "noop (no drop target)")
}

func TestModel_PickIgnoresSentinels(t *testing.T) {
	m := newTestModel(t, newMockLayoutService(), &mockGestureService{})
	m = cursorTo(t, m, "end-separator:0")

	m = update(t, m, keySpace)
	assert.Nil(t, m.dragging)

	m = update(t, m, keyEnter)
	assert.Nil(t, m.dragging)
}

func TestModel_GestureError(t *testing.T) {
	gestures := &mockGestureService{err: errors.New("cross-container drop")}
	m := newTestModel(t, newMockLayoutService(), gestures)
	m = cursorTo(t, m, "tab:5")
	m = update(t, m, keySpace)
	m = cursorTo(t, m, "window:new")

	m = update(t, m, keyEnter)

	assert.Nil(t, m.dragging)
	assert.EqualError(t, m.err, "cross-container drop")
}

func TestModel_ReloadRequested(t *testing.T) {
	gestures := &mockGestureService{
		result: &primary.GestureResult{Outcome: primary.OutcomeResynced},
		reload: true,
	}
	m := newTestModel(t, newMockLayoutService(), gestures)
	m = cursorTo(t, m, "group:7")
	m = update(t, m, keySpace)
	m = cursorTo(t, m, "tab:2")

	m = update(t, m, keyEnter)

	assert.Contains(t, m.status, "reloaded")
}

func TestModel_ToggleSelection(t *testing.T) {
	layout := newMockLayoutService()
	m := newTestModel(t, layout, &mockGestureService{})
	m = cursorTo(t, m, "grouped:3")

	m = update(t, m, keyRunes("x"))
	assert.Equal(t, []int{3}, layout.selection)
	assert.True(t, m.selected[3])

	m = cursorTo(t, m, "tab:5")
	m = update(t, m, keyRunes("x"))
	assert.Equal(t, []int{3, 5}, layout.selection)

	m = cursorTo(t, m, "grouped:3")
	m = update(t, m, keyRunes("x"))
	assert.Equal(t, []int{5}, layout.selection)
	assert.False(t, m.selected[3])

	t.Run("non-tab rows are ignored", func(t *testing.T) {
		calls := len(layout.selectCalled)
		m = cursorTo(t, m, "group:7")
		m = update(t, m, keyRunes("x"))
		assert.Len(t, layout.selectCalled, calls)
	})

	t.Run("failure is shown", func(t *testing.T) {
		layout.selectErr = errors.New("disk full")
		m = cursorTo(t, m, "tab:2")
		m = update(t, m, keyRunes("x"))
		require.Error(t, m.err)
		assert.Contains(t, m.err.Error(), "disk full")
	})
}

func TestModel_ToggleCollapse(t *testing.T) {
	layout := newMockLayoutService()
	m := newTestModel(t, layout, &mockGestureService{})
	m = cursorTo(t, m, "grouped:4")

	m = update(t, m, keyRunes("c"))

	assert.True(t, layout.collapsed[7])
	assert.Equal(t, -1, m.rowIndex("grouped:4"), "collapsed members are hidden")
	assert.Contains(t, m.View(), "▸")

	m = cursorTo(t, m, "group:7")
	m = update(t, m, keyRunes("c"))
	assert.False(t, layout.collapsed[7])
	assert.GreaterOrEqual(t, m.rowIndex("grouped:4"), 0)
}

func TestModel_ExternalChangeReloads(t *testing.T) {
	layout := newMockLayoutService()
	m := newTestModel(t, layout, &mockGestureService{})
	layout.layout.Tabs = layout.layout.Tabs[:2]

	m = update(t, m, ExternalChangeMsg{})

	assert.Equal(t, -1, m.rowIndex("tab:5"))
}

func TestModel_DragSourceDisappears(t *testing.T) {
	layout := newMockLayoutService()
	m := newTestModel(t, layout, &mockGestureService{})
	m = cursorTo(t, m, "tab:5")
	m = update(t, m, keySpace)
	require.NotNil(t, m.dragging)

	layout.layout.Tabs = layout.layout.Tabs[:4]
	m = update(t, m, ExternalChangeMsg{})

	assert.Nil(t, m.dragging)
	assert.Equal(t, "drag source disappeared", m.status)
}

func TestModel_CursorClamps(t *testing.T) {
	m := newTestModel(t, newMockLayoutService(), &mockGestureService{})

	m = update(t, m, keyRunes("k"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, keyRunes("G"))
	assert.Equal(t, len(m.rows)-1, m.cursor)
	m = update(t, m, keyRunes("j"))
	assert.Equal(t, len(m.rows)-1, m.cursor)
}

func TestModel_VisibleRangeFollowsCursor(t *testing.T) {
	m := newTestModel(t, newMockLayoutService(), &mockGestureService{})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	m = update(t, m, keyRunes("G"))

	start, end := m.visibleRange()
	assert.Equal(t, 3, end-start)
	assert.Equal(t, len(m.rows), end)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, newMockLayoutService(), &mockGestureService{})
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
