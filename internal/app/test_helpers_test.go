package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/core/tabstrip"
	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// ============================================================================
// fakeStore: an in-memory TabStore/WindowStore/WorkspaceStore over tabstrip
// ============================================================================

var (
	_ secondary.TabStore       = (*fakeStore)(nil)
	_ secondary.WindowStore    = (*fakeStore)(nil)
	_ secondary.WorkspaceStore = (*fakeStore)(nil)
)

type fakeStore struct {
	strips  map[int]*tabstrip.Strip
	windows []int
	focused int

	titles     map[int]string
	groupMeta  map[int][2]string
	assigned   map[string]int
	workspaces []*secondary.WorkspaceRecord

	nextWindow int
	nextItem   int
	nextGroup  int

	// calls lists every mutating call, in order.
	calls []string

	// moveGroupErrs is consumed one entry per MoveGroup call.
	moveGroupErrs []error
	// failOn makes the named method fail.
	failOn map[string]error
}

func newFakeStore(windowID int, tabs ...tabstrip.Tab) *fakeStore {
	s := &fakeStore{
		strips:     make(map[int]*tabstrip.Strip),
		titles:     make(map[int]string),
		groupMeta:  make(map[int][2]string),
		assigned:   make(map[string]int),
		failOn:     make(map[string]error),
		nextWindow: windowID,
		nextItem:   100,
		nextGroup:  100,
	}
	s.strips[windowID] = tabstrip.New(tabs)
	s.windows = append(s.windows, windowID)
	s.focused = windowID
	return s
}

func (s *fakeStore) record(call string, args ...any) error {
	s.calls = append(s.calls, fmt.Sprintf(call, args...))
	name, _, _ := strings.Cut(call, "(")
	return s.failOn[name]
}

func (s *fakeStore) order(windowID int) []int {
	var out []int
	for _, t := range s.strips[windowID].Tabs() {
		out = append(out, t.ID)
	}
	return out
}

func (s *fakeStore) countCalls(prefix string) int {
	n := 0
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (s *fakeStore) windowOfItem(id int) (int, int) {
	for _, wid := range s.windows {
		if pos := s.strips[wid].IndexOf(id); pos >= 0 {
			return wid, pos
		}
	}
	return 0, -1
}

func (s *fakeStore) windowOfGroup(gid int) int {
	for _, wid := range s.windows {
		if _, size := s.strips[wid].GroupRange(gid); size > 0 {
			return wid
		}
	}
	return 0
}

func (s *fakeStore) GetItem(ctx context.Context, id int) (*secondary.ItemRecord, error) {
	wid, pos := s.windowOfItem(id)
	if pos < 0 {
		return nil, fmt.Errorf("item %d not found", id)
	}
	t := s.strips[wid].Tabs()[pos]
	return &secondary.ItemRecord{
		ID:          t.ID,
		WindowID:    wid,
		Index:       pos,
		Pinned:      t.Pinned,
		GroupID:     t.GroupID,
		Title:       s.titles[t.ID],
		WorkspaceID: s.assigned[fmt.Sprintf("item:%d", t.ID)],
	}, nil
}

func (s *fakeStore) QueryItems(ctx context.Context, filter secondary.ItemFilter) ([]*secondary.ItemRecord, error) {
	var out []*secondary.ItemRecord
	for _, wid := range s.windows {
		if filter.WindowID != 0 && wid != filter.WindowID {
			continue
		}
		for _, t := range s.strips[wid].Tabs() {
			r, _ := s.GetItem(ctx, t.ID)
			if filter.GroupID != 0 && r.GroupID != filter.GroupID {
				continue
			}
			if filter.Pinned != nil && r.Pinned != *filter.Pinned {
				continue
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) GetGroup(ctx context.Context, id int) (*secondary.GroupRecord, error) {
	wid := s.windowOfGroup(id)
	if wid == 0 {
		return nil, fmt.Errorf("group %d not found", id)
	}
	start, size := s.strips[wid].GroupRange(id)
	r := &secondary.GroupRecord{
		ID:          id,
		WindowID:    wid,
		Index:       start,
		Title:       s.groupMeta[id][0],
		Color:       s.groupMeta[id][1],
		WorkspaceID: s.assigned[fmt.Sprintf("group:%d", id)],
	}
	for _, t := range s.strips[wid].Tabs()[start : start+size] {
		r.MemberIDs = append(r.MemberIDs, t.ID)
	}
	return r, nil
}

func (s *fakeStore) ListGroups(ctx context.Context, windowID int) ([]*secondary.GroupRecord, error) {
	var out []*secondary.GroupRecord
	for _, gid := range s.strips[windowID].GroupIDs() {
		g, _ := s.GetGroup(ctx, gid)
		out = append(out, g)
	}
	return out, nil
}

func (s *fakeStore) MoveItem(ctx context.Context, id, index int) error {
	if err := s.record("moveItem(%d, %d)", id, index); err != nil {
		return err
	}
	wid, _ := s.windowOfItem(id)
	if wid == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return s.strips[wid].Move(id, index)
}

func (s *fakeStore) MoveGroup(ctx context.Context, groupID, index int) error {
	if err := s.record("moveGroup(%d, %d)", groupID, index); err != nil {
		return err
	}
	if len(s.moveGroupErrs) > 0 {
		err := s.moveGroupErrs[0]
		s.moveGroupErrs = s.moveGroupErrs[1:]
		if err != nil {
			return err
		}
	}
	wid := s.windowOfGroup(groupID)
	if wid == 0 {
		return fmt.Errorf("group %d not found", groupID)
	}
	err := s.strips[wid].MoveGroup(groupID, index)
	if errors.Is(err, tabstrip.ErrMiddleOfGroup) {
		return secondary.ErrMiddleOfGroup
	}
	return err
}

func (s *fakeStore) GroupItems(ctx context.Context, ids []int, groupID int) (int, error) {
	if err := s.record("groupItems(%v, %d)", ids, groupID); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("no items to group")
	}
	wid, _ := s.windowOfItem(ids[0])
	if wid == 0 {
		return 0, fmt.Errorf("item %d not found", ids[0])
	}
	gid := groupID
	if gid == 0 {
		s.nextGroup++
		gid = s.nextGroup
	}
	return gid, s.strips[wid].Group(ids, gid)
}

func (s *fakeStore) UngroupItem(ctx context.Context, id int) error {
	if err := s.record("ungroupItem(%d)", id); err != nil {
		return err
	}
	wid, _ := s.windowOfItem(id)
	if wid == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return s.strips[wid].Ungroup(id)
}

func (s *fakeStore) SetPinned(ctx context.Context, id int, pinned bool) error {
	if err := s.record("setPinned(%d, %t)", id, pinned); err != nil {
		return err
	}
	wid, _ := s.windowOfItem(id)
	if wid == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return s.strips[wid].SetPinned(id, pinned)
}

func (s *fakeStore) UpdateGroup(ctx context.Context, groupID int, title, color string) error {
	if err := s.record("updateGroup(%d, %s, %s)", groupID, title, color); err != nil {
		return err
	}
	s.groupMeta[groupID] = [2]string{title, color}
	return nil
}

func (s *fakeStore) CreateTab(ctx context.Context, record *secondary.ItemRecord) error {
	if err := s.record("createTab(%d)", record.WindowID); err != nil {
		return err
	}
	strip, ok := s.strips[record.WindowID]
	if !ok {
		return fmt.Errorf("window %d not found", record.WindowID)
	}
	s.nextItem++
	record.ID = s.nextItem
	strip.Add(tabstrip.Tab{ID: record.ID, Pinned: record.Pinned, GroupID: tabstrip.NoGroup})
	record.Index = strip.IndexOf(record.ID)
	s.titles[record.ID] = record.Title
	return nil
}

func (s *fakeStore) CreateWindow(ctx context.Context) (*secondary.WindowRecord, error) {
	if err := s.record("createWindow()"); err != nil {
		return nil, err
	}
	s.nextWindow++
	s.strips[s.nextWindow] = tabstrip.New(nil)
	s.windows = append(s.windows, s.nextWindow)
	return &secondary.WindowRecord{ID: s.nextWindow}, nil
}

func (s *fakeStore) GetWindow(ctx context.Context, id int) (*secondary.WindowRecord, error) {
	if _, ok := s.strips[id]; !ok {
		return nil, fmt.Errorf("window %d not found", id)
	}
	return &secondary.WindowRecord{ID: id, Focused: id == s.focused}, nil
}

func (s *fakeStore) ListWindows(ctx context.Context) ([]*secondary.WindowRecord, error) {
	var out []*secondary.WindowRecord
	for _, wid := range s.windows {
		out = append(out, &secondary.WindowRecord{ID: wid, Focused: wid == s.focused})
	}
	return out, nil
}

func (s *fakeStore) MoveItemToWindow(ctx context.Context, itemID, windowID int) error {
	if err := s.record("moveItemToWindow(%d, %d)", itemID, windowID); err != nil {
		return err
	}
	src, _ := s.windowOfItem(itemID)
	dst, ok := s.strips[windowID]
	if src == 0 || !ok {
		return fmt.Errorf("cannot move item %d to window %d", itemID, windowID)
	}
	t, err := s.strips[src].Remove(itemID)
	if err != nil {
		return err
	}
	t.Pinned = false
	dst.Add(t)
	return nil
}

func (s *fakeStore) MoveGroupToWindow(ctx context.Context, groupID, windowID int) error {
	if err := s.record("moveGroupToWindow(%d, %d)", groupID, windowID); err != nil {
		return err
	}
	src := s.windowOfGroup(groupID)
	dst, ok := s.strips[windowID]
	if src == 0 || !ok {
		return fmt.Errorf("cannot move group %d to window %d", groupID, windowID)
	}
	block, err := s.strips[src].RemoveGroup(groupID)
	if err != nil {
		return err
	}
	dst.AddGroup(block)
	return nil
}

func (s *fakeStore) FocusWindow(ctx context.Context, windowID int) error {
	if err := s.record("focusWindow(%d)", windowID); err != nil {
		return err
	}
	s.focused = windowID
	return nil
}

func (s *fakeStore) CreateWorkspace(ctx context.Context, name string) (*secondary.WorkspaceRecord, error) {
	ws := &secondary.WorkspaceRecord{ID: len(s.workspaces) + 1, Name: name, Position: len(s.workspaces)}
	s.workspaces = append(s.workspaces, ws)
	return ws, nil
}

func (s *fakeStore) ListWorkspaces(ctx context.Context) ([]*secondary.WorkspaceRecord, error) {
	return s.workspaces, nil
}

func (s *fakeStore) AssignToWorkspace(ctx context.Context, subject string, id, workspaceID int) error {
	if err := s.record("assign(%s:%d, %d)", subject, id, workspaceID); err != nil {
		return err
	}
	s.assigned[fmt.Sprintf("%s:%d", subject, id)] = workspaceID
	return nil
}

func (s *fakeStore) ClearWorkspaceAssignment(ctx context.Context, subject string, id int) error {
	if err := s.record("clearAssignment(%s:%d)", subject, id); err != nil {
		return err
	}
	delete(s.assigned, fmt.Sprintf("%s:%d", subject, id))
	return nil
}

func (s *fakeStore) ReorderByWorkspace(ctx context.Context, windowID int) error {
	return s.record("reorderByWorkspace(%d)", windowID)
}

// ============================================================================
// Selection, view state, sink and reorder mocks
// ============================================================================

type mockSelectionStore struct {
	sel      secondary.SelectionRecord
	getErr   error
	cleared  int
	setCalls int
}

func newMockSelectionStore(ids ...int) *mockSelectionStore {
	return &mockSelectionStore{sel: secondary.SelectionRecord{IDs: ids}}
}

func (m *mockSelectionStore) GetSelection(ctx context.Context) (*secondary.SelectionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	sel := m.sel
	return &sel, nil
}

func (m *mockSelectionStore) SetSelection(ctx context.Context, sel *secondary.SelectionRecord) error {
	m.setCalls++
	m.sel = *sel
	return nil
}

func (m *mockSelectionStore) ClearSelection(ctx context.Context) error {
	m.cleared++
	m.sel = secondary.SelectionRecord{}
	return nil
}

type mockViewState struct {
	collapsed map[int]bool
}

func newMockViewState(ids ...int) *mockViewState {
	m := &mockViewState{collapsed: make(map[int]bool)}
	for _, id := range ids {
		m.collapsed[id] = true
	}
	return m
}

func (m *mockViewState) Collapsed(ctx context.Context) (map[int]bool, error) {
	return m.collapsed, nil
}

func (m *mockViewState) SetCollapsed(ctx context.Context, groupID int, collapsed bool) error {
	if collapsed {
		m.collapsed[groupID] = true
	} else {
		delete(m.collapsed, groupID)
	}
	return nil
}

type recordedEvent struct {
	phase string
	data  map[string]any
}

type recordingSink struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingSink) Record(ctx context.Context, phase string, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{phase: phase, data: data})
}

func (r *recordingSink) has(phase string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.phase == phase {
			return true
		}
	}
	return false
}

type mockReorderer struct {
	scheduled []int
}

func (m *mockReorderer) Schedule(windowID int) {
	m.scheduled = append(m.scheduled, windowID)
}

// mockEffectExecutor records effects instead of running them.
type mockEffectExecutor struct {
	executedEffects []effects.Effect
	executeErr      error
}

func newMockEffectExecutor() *mockEffectExecutor {
	return &mockEffectExecutor{}
}

func (m *mockEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	m.executedEffects = append(m.executedEffects, effs...)
	return nil
}

// ============================================================================
// Harness
// ============================================================================

type gestureHarness struct {
	store     *fakeStore
	selection *mockSelectionStore
	view      *mockViewState
	sink      *recordingSink
	reorderer *mockReorderer
	service   *GestureServiceImpl
	layout    *LayoutServiceImpl

	cleared  int
	reloaded int
	moved    []int
	movedFor time.Duration
}

func newGestureHarness(tabs ...tabstrip.Tab) *gestureHarness {
	h := &gestureHarness{
		store:     newFakeStore(1, tabs...),
		selection: newMockSelectionStore(),
		view:      newMockViewState(),
		sink:      &recordingSink{},
		reorderer: &mockReorderer{},
	}
	executor := NewEffectExecutor(h.store, h.store, h.store, h.reorderer, h.sink)
	router := NewRouter(h.store, h.selection, executor, h.sink)
	h.service = NewGestureService(h.store, h.selection, router, executor, h.sink)
	h.layout = NewLayoutService(h.store, h.store, h.store, h.selection, h.view)
	return h
}

// drag snapshots window 1 and runs one gesture against it.
func (h *gestureHarness) drag(activeID, overID string) (*primary.GestureResult, error) {
	ctx := context.Background()
	snap, err := h.layout.Snapshot(ctx, 1)
	if err != nil {
		return nil, err
	}
	req := snap.Request(activeID, overID)
	req.Callbacks = primary.Callbacks{
		ClearDragState: func() { h.cleared++ },
		MarkRecentlyMoved: func(id int, d time.Duration) {
			h.moved = append(h.moved, id)
			h.movedFor = d
		},
		RequestReload: func() { h.reloaded++ },
	}
	return h.service.HandleGestureEnd(ctx, req)
}

func p(id int) tabstrip.Tab { return tabstrip.Tab{ID: id, Pinned: true, GroupID: tabstrip.NoGroup} }

func f(id int) tabstrip.Tab { return tabstrip.Tab{ID: id, GroupID: tabstrip.NoGroup} }

func g(id, gid int) tabstrip.Tab { return tabstrip.Tab{ID: id, GroupID: gid} }
