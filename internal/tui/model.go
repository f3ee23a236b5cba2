// Package tui is an interactive strip view that drives drag gestures from the
// keyboard: pick a row up, move the cursor over a target, drop.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/tabdeck/internal/ports/primary"
)

// Options configures a Model.
type Options struct {
	Layout        primary.LayoutService
	Gestures      primary.GestureService
	WindowID      int
	RecentlyMoved time.Duration // highlight length when the engine gives none
}

type loadedMsg struct {
	layout     *primary.WindowLayout
	workspaces []*primary.Workspace
	windows    []*primary.Window
	selection  []int
	err        error
}

type droppedMsg struct {
	active  Row
	result  *primary.GestureResult
	err     error
	cleared bool
	moved   []movedMark
	reload  bool
}

type movedMark struct {
	id int
	d  time.Duration
}

type movedExpiredMsg struct {
	key string
}

type actionDoneMsg struct {
	status  string
	err     error
	loadErr error
}

// Model is the Bubble Tea model for the strip view.
type Model struct {
	layout        primary.LayoutService
	gestures      primary.GestureService
	windowID      int
	recentlyMoved time.Duration
	keys          KeyMap
	now           func() time.Time

	snapshot   *primary.WindowLayout
	workspaces []*primary.Workspace
	windows    []*primary.Window
	rows       []Row
	cursor     int
	selected   map[int]bool
	selection  []int

	dragging *Row
	moved    map[string]time.Time

	width   int
	height  int
	status  string
	err     error
	loadErr error
}

// New creates a strip view for one window.
func New(opts Options) Model {
	if opts.RecentlyMoved <= 0 {
		opts.RecentlyMoved = 520 * time.Millisecond
	}
	return Model{
		layout:        opts.Layout,
		gestures:      opts.Gestures,
		windowID:      opts.WindowID,
		recentlyMoved: opts.RecentlyMoved,
		keys:          DefaultKeyMap(),
		now:           time.Now,
		selected:      make(map[int]bool),
		moved:         make(map[string]time.Time),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.applyLoad(msg)
		}
		return m, nil

	case ExternalChangeMsg:
		return m, m.load()

	case droppedMsg:
		return m.applyDrop(msg)

	case movedExpiredMsg:
		if until, ok := m.moved[msg.key]; ok && !m.now().Before(until) {
			delete(m.moved, msg.key)
		}
		return m, nil

	case actionDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
		}
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.rows)-1, 0)
	case key.Matches(msg, m.keys.Pick):
		if m.dragging != nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok || !row.Draggable() {
			return m, nil
		}
		m.dragging = &row
		m.status = "dragging " + row.ID
	case key.Matches(msg, m.keys.Drop):
		if m.dragging == nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.drop(*m.dragging, row.ID)
	case key.Matches(msg, m.keys.Cancel):
		if m.dragging == nil {
			return m, nil
		}
		return m, m.drop(*m.dragging, "")
	case key.Matches(msg, m.keys.Select):
		if m.dragging != nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok || !row.IsTab() {
			return m, nil
		}
		return m, m.toggleSelection(row.TabID)
	case key.Matches(msg, m.keys.Collapse):
		if m.dragging != nil || m.snapshot == nil {
			return m, nil
		}
		row, ok := m.current()
		if !ok || row.GroupID < 0 || row.Kind == rowZone {
			return m, nil
		}
		return m, m.setCollapsed(row.GroupID, !m.snapshot.Collapsed[row.GroupID])
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	}
	return m, nil
}

func (m *Model) applyLoad(msg loadedMsg) {
	m.snapshot = msg.layout
	m.workspaces = msg.workspaces
	m.windows = msg.windows
	m.selection = msg.selection
	m.selected = make(map[int]bool, len(msg.selection))
	for _, id := range msg.selection {
		m.selected[id] = true
	}
	m.rows = buildRows(msg.layout, msg.workspaces, msg.windows)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	if m.dragging != nil && m.rowIndex(m.dragging.ID) < 0 {
		m.dragging = nil
		m.status = "drag source disappeared"
	}
}

func (m Model) applyDrop(msg droppedMsg) (tea.Model, tea.Cmd) {
	if msg.cleared || msg.err != nil {
		m.dragging = nil
	}
	cmds := []tea.Cmd{m.load()}

	if msg.err != nil {
		m.err = msg.err
		return m, tea.Batch(cmds...)
	}
	m.err = nil
	m.status = describeResult(msg.active, msg.result)
	if msg.reload {
		m.status += "; store changed, reloaded"
	}
	for _, mark := range msg.moved {
		d := mark.d
		if d <= 0 {
			d = m.recentlyMoved
		}
		k := movedKey(msg.active.Kind, mark.id)
		m.moved[k] = m.now().Add(d)
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return movedExpiredMsg{key: k}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m Model) current() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) rowIndex(id string) int {
	for i, row := range m.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) load() tea.Cmd {
	svc, windowID := m.layout, m.windowID
	return func() tea.Msg {
		ctx := context.Background()
		var msg loadedMsg
		msg.layout, msg.err = svc.Snapshot(ctx, windowID)
		if msg.err != nil {
			return msg
		}
		if msg.workspaces, msg.err = svc.ListWorkspaces(ctx); msg.err != nil {
			return msg
		}
		if msg.windows, msg.err = svc.ListWindows(ctx); msg.err != nil {
			return msg
		}
		msg.selection, msg.err = svc.Selection(ctx)
		return msg
	}
}

// drop ends the gesture against the snapshot the rows were built from.
func (m Model) drop(active Row, overID string) tea.Cmd {
	snapshot, gestures := m.snapshot, m.gestures
	return func() tea.Msg {
		msg := droppedMsg{active: active}
		if snapshot == nil {
			msg.err = errors.New("no layout loaded")
			return msg
		}
		req := snapshot.Request(active.ID, overID)
		req.Callbacks = primary.Callbacks{
			ClearDragState: func() { msg.cleared = true },
			MarkRecentlyMoved: func(id int, d time.Duration) {
				msg.moved = append(msg.moved, movedMark{id: id, d: d})
			},
			RequestReload: func() { msg.reload = true },
		}
		msg.result, msg.err = gestures.HandleGestureEnd(context.Background(), req)
		return msg
	}
}

func (m Model) toggleSelection(tabID int) tea.Cmd {
	ids := make([]int, 0, len(m.selection)+1)
	removed := false
	for _, id := range m.selection {
		if id == tabID {
			removed = true
			continue
		}
		ids = append(ids, id)
	}
	if !removed {
		ids = append(ids, tabID)
	}
	svc := m.layout
	return func() tea.Msg {
		if err := svc.Select(context.Background(), ids); err != nil {
			return actionDoneMsg{err: fmt.Errorf("failed to update selection: %w", err)}
		}
		return actionDoneMsg{status: fmt.Sprintf("%d selected", len(ids))}
	}
}

func (m Model) setCollapsed(groupID int, collapsed bool) tea.Cmd {
	svc := m.layout
	return func() tea.Msg {
		if err := svc.SetCollapsed(context.Background(), groupID, collapsed); err != nil {
			return actionDoneMsg{err: fmt.Errorf("failed to collapse group %d: %w", groupID, err)}
		}
		verb := "expanded"
		if collapsed {
			verb = "collapsed"
		}
		return actionDoneMsg{status: fmt.Sprintf("group %d %s", groupID, verb)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Window %d", m.windowID)
	if m.dragging != nil {
		title += "  " + draggingStyle.Render("dragging "+m.dragging.ID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("✗ " + m.loadErr.Error()))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) visibleRange() (int, int) {
	height := m.height - 5
	if m.height == 0 || height >= len(m.rows) {
		return 0, len(m.rows)
	}
	if height < 1 {
		height = 1
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	return start, start + height
}

func (m Model) renderRow(i int) string {
	row := m.rows[i]

	var text string
	switch row.Kind {
	case rowPinnedSeparator, rowGroupSeparator, rowEndSeparator:
		text = sentinelStyle.Render("┄┄ " + row.Label)
	case rowPinned:
		text = pinnedStyle.Render("⊙ ") + row.Label
	case rowGroup:
		marker := "▾ "
		if m.snapshot != nil && m.snapshot.Collapsed[row.GroupID] {
			marker = "▸ "
		}
		text = groupStyle(row.Color).Render(marker + row.Label)
	case rowGrouped:
		text = "  │ " + row.Label
	case rowZone:
		text = zoneStyle.Render("⇢ " + row.Label)
	default:
		text = row.Label
	}

	if row.IsTab() && m.selected[row.TabID] {
		text = selectedMark + text
	}
	switch {
	case m.dragging != nil && m.dragging.ID == row.ID:
		text = draggingStyle.Render(text)
	case m.isMoved(row):
		text = movedStyle.Render(text)
	}

	if i == m.cursor {
		return cursorStyle.Render("› " + text)
	}
	return "  " + text
}

func (m Model) isMoved(row Row) bool {
	var k string
	switch {
	case row.Kind == rowGroup:
		k = movedKey(rowGroup, row.GroupID)
	case row.IsTab():
		k = movedKey(row.Kind, row.TabID)
	default:
		return false
	}
	until, ok := m.moved[k]
	return ok && m.now().Before(until)
}

func (m Model) renderHelp() string {
	bindings := m.keys.footer(m.dragging != nil)
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

func movedKey(kind rowKind, id int) string {
	if kind == rowGroup {
		return "group:" + strconv.Itoa(id)
	}
	return "tab:" + strconv.Itoa(id)
}

func describeResult(active Row, result *primary.GestureResult) string {
	if result == nil {
		return ""
	}
	s := fmt.Sprintf("%s %s", active.ID, result.Outcome)
	if result.Reason != "" {
		s += " (" + result.Reason + ")"
	}
	if result.Failure != nil {
		s += ": " + result.Failure.Error()
	}
	return s
}
