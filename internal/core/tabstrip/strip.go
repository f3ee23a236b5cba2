// Package tabstrip contains the pure ordering rules of a window's tab strip.
// Store adapters load a window into a Strip, apply one operation and persist
// the result, so every adapter shares the same index semantics.
package tabstrip

import (
	"errors"
	"fmt"
	"sort"
)

// NoGroup marks a tab that is not a member of any group.
const NoGroup = -1

var (
	// ErrMiddleOfGroup is returned when a group move would split another group.
	ErrMiddleOfGroup = errors.New("cannot move a group into the middle of another group")
	// ErrTabNotFound is returned for an unknown tab id.
	ErrTabNotFound = errors.New("tab not found")
	// ErrGroupNotFound is returned for an unknown or empty group id.
	ErrGroupNotFound = errors.New("group not found")
	// ErrPinnedGroup is returned when grouping a pinned tab.
	ErrPinnedGroup = errors.New("pinned tabs cannot be grouped")
)

// Tab is one entry of the strip.
type Tab struct {
	ID      int
	Pinned  bool
	GroupID int
}

// Unit is either a single free tab or a whole group; SortUnits works at this granularity.
type Unit struct {
	TabID   int
	GroupID int
}

// IsGroup reports whether the unit is a group.
func (u Unit) IsGroup() bool { return u.GroupID != NoGroup }

// Strip is the ordered list of tabs of one window.
// Invariants: pinned tabs form a prefix, pinned tabs are never grouped,
// and the members of a group occupy a contiguous range.
type Strip struct {
	tabs []Tab
}

// New creates a strip from tabs in their current order.
func New(tabs []Tab) *Strip {
	s := &Strip{tabs: make([]Tab, len(tabs))}
	copy(s.tabs, tabs)
	return s
}

// Tabs returns a copy of the tabs in order.
func (s *Strip) Tabs() []Tab {
	out := make([]Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Len returns the number of tabs.
func (s *Strip) Len() int { return len(s.tabs) }

// PinnedCount returns the length of the pinned prefix.
func (s *Strip) PinnedCount() int { return pinnedCount(s.tabs) }

// IndexOf returns the position of a tab, or -1.
func (s *Strip) IndexOf(id int) int {
	for i, t := range s.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tab returns the tab with the given id.
func (s *Strip) Tab(id int) (Tab, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.tabs[i], true
	}
	return Tab{}, false
}

// GroupRange returns the start index and member count of a group.
// size is 0 when the group has no members in this strip.
func (s *Strip) GroupRange(gid int) (start, size int) {
	return groupRange(s.tabs, gid)
}

// GroupIDs returns the ids of the groups in strip order.
func (s *Strip) GroupIDs() []int {
	var ids []int
	seen := make(map[int]bool)
	for _, t := range s.tabs {
		if t.GroupID != NoGroup && !seen[t.GroupID] {
			seen[t.GroupID] = true
			ids = append(ids, t.GroupID)
		}
	}
	return ids
}

// Move repositions a tab so that it ends up at idx.
// Pinned tabs stay inside the pinned prefix and unpinned tabs stay outside it.
// Group membership is then derived from the new neighbours.
func (s *Strip) Move(id, idx int) error {
	pos := s.IndexOf(id)
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	t := s.tabs[pos]
	rest := removeAt(s.tabs, pos)

	p := pinnedCount(rest)
	lo, hi := p, len(rest)
	if t.Pinned {
		lo, hi = 0, p
	}
	idx = clamp(idx, lo, hi)

	s.tabs = insertAt(rest, idx, t)
	s.normalize(idx)
	return nil
}

// normalize recomputes group membership of the tab at i from its neighbours.
func (s *Strip) normalize(i int) {
	t := &s.tabs[i]
	if t.Pinned {
		t.GroupID = NoGroup
		return
	}
	left, right := NoGroup, NoGroup
	if i > 0 && !s.tabs[i-1].Pinned {
		left = s.tabs[i-1].GroupID
	}
	if i+1 < len(s.tabs) {
		right = s.tabs[i+1].GroupID
	}
	switch {
	case left != NoGroup && left == right:
		t.GroupID = left
	case t.GroupID != NoGroup && (left == t.GroupID || right == t.GroupID):
	default:
		t.GroupID = NoGroup
	}
}

// MoveGroup moves a whole group so its first member ends up at idx.
func (s *Strip) MoveGroup(gid, idx int) error {
	start, size := s.GroupRange(gid)
	if size == 0 {
		return fmt.Errorf("%w: %d", ErrGroupNotFound, gid)
	}
	block := make([]Tab, size)
	copy(block, s.tabs[start:start+size])

	rest := make([]Tab, 0, len(s.tabs)-size)
	rest = append(rest, s.tabs[:start]...)
	rest = append(rest, s.tabs[start+size:]...)

	idx = clamp(idx, pinnedCount(rest), len(rest))
	if idx > 0 && idx < len(rest) {
		left, right := rest[idx-1].GroupID, rest[idx].GroupID
		if left != NoGroup && left == right {
			return fmt.Errorf("%w: group %d at index %d", ErrMiddleOfGroup, gid, idx)
		}
	}

	out := make([]Tab, 0, len(s.tabs))
	out = append(out, rest[:idx]...)
	out = append(out, block...)
	out = append(out, rest[idx:]...)
	s.tabs = out
	return nil
}

// Group adds tabs to group gid, placing each at the group's current tail.
// When gid has no members yet the group is created at the first tab's position.
func (s *Strip) Group(ids []int, gid int) error {
	for _, id := range ids {
		t, ok := s.Tab(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrTabNotFound, id)
		}
		if t.Pinned {
			return fmt.Errorf("%w: %d", ErrPinnedGroup, id)
		}
	}
	for _, id := range ids {
		pos := s.IndexOf(id)
		t := s.tabs[pos]
		if t.GroupID == gid {
			continue
		}
		rest := removeAt(s.tabs, pos)
		at := pos
		if start, size := groupRange(rest, gid); size > 0 {
			at = start + size
		}
		t.GroupID = gid
		s.tabs = insertAt(rest, at, t)
	}
	return nil
}

// Ungroup removes a tab from its group. A middle member is moved to just
// after the remaining members so the group stays contiguous.
func (s *Strip) Ungroup(id int) error {
	pos := s.IndexOf(id)
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	gid := s.tabs[pos].GroupID
	if gid == NoGroup {
		return nil
	}
	start, size := s.GroupRange(gid)
	last := start + size - 1
	if pos == start || pos == last {
		s.tabs[pos].GroupID = NoGroup
		return nil
	}
	t := s.tabs[pos]
	t.GroupID = NoGroup
	rest := removeAt(s.tabs, pos)
	s.tabs = insertAt(rest, last, t)
	return nil
}

// SetPinned pins a tab to the end of the pinned strip, or unpins it to the
// start of the free area.
func (s *Strip) SetPinned(id int, pinned bool) error {
	pos := s.IndexOf(id)
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	t := s.tabs[pos]
	if t.Pinned == pinned {
		return nil
	}
	rest := removeAt(s.tabs, pos)
	t.Pinned = pinned
	t.GroupID = NoGroup
	s.tabs = insertAt(rest, pinnedCount(rest), t)
	return nil
}

// Remove takes a tab out of the strip.
func (s *Strip) Remove(id int) (Tab, error) {
	pos := s.IndexOf(id)
	if pos < 0 {
		return Tab{}, fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	t := s.tabs[pos]
	s.tabs = removeAt(s.tabs, pos)
	return t, nil
}

// Add inserts a single tab: pinned tabs at the end of the pinned strip,
// others ungrouped at the end.
func (s *Strip) Add(t Tab) {
	t.GroupID = NoGroup
	if t.Pinned {
		s.tabs = insertAt(s.tabs, s.PinnedCount(), t)
		return
	}
	s.tabs = append(s.tabs, t)
}

// RemoveGroup takes all members of a group out of the strip.
func (s *Strip) RemoveGroup(gid int) ([]Tab, error) {
	start, size := s.GroupRange(gid)
	if size == 0 {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, gid)
	}
	block := make([]Tab, size)
	copy(block, s.tabs[start:start+size])
	s.tabs = append(s.tabs[:start:start], s.tabs[start+size:]...)
	return block, nil
}

// AddGroup appends a block of group members at the end of the strip.
func (s *Strip) AddGroup(block []Tab) {
	for _, t := range block {
		t.Pinned = false
		s.tabs = append(s.tabs, t)
	}
}

// Units returns the unpinned part of the strip as free tabs and whole groups.
func (s *Strip) Units() []Unit {
	var units []Unit
	for i := s.PinnedCount(); i < len(s.tabs); i++ {
		t := s.tabs[i]
		if t.GroupID == NoGroup {
			units = append(units, Unit{TabID: t.ID, GroupID: NoGroup})
			continue
		}
		if n := len(units); n > 0 && units[n-1].GroupID == t.GroupID {
			continue
		}
		units = append(units, Unit{TabID: t.ID, GroupID: t.GroupID})
	}
	return units
}

// SortUnits stably reorders free tabs and whole groups by key.
// The pinned prefix is left untouched.
func (s *Strip) SortUnits(key func(Unit) int) {
	units := s.Units()
	sort.SliceStable(units, func(i, j int) bool {
		return key(units[i]) < key(units[j])
	})

	p := s.PinnedCount()
	out := make([]Tab, 0, len(s.tabs))
	out = append(out, s.tabs[:p]...)
	for _, u := range units {
		if !u.IsGroup() {
			t, _ := s.Tab(u.TabID)
			out = append(out, t)
			continue
		}
		start, size := s.GroupRange(u.GroupID)
		out = append(out, s.tabs[start:start+size]...)
	}
	s.tabs = out
}

// Validate checks the strip invariants.
func (s *Strip) Validate() error {
	seenUnpinned := false
	closed := make(map[int]bool)
	current := NoGroup
	for i, t := range s.tabs {
		if t.Pinned {
			if seenUnpinned {
				return fmt.Errorf("pinned tab %d at index %d after unpinned tabs", t.ID, i)
			}
			if t.GroupID != NoGroup {
				return fmt.Errorf("pinned tab %d is grouped", t.ID)
			}
			continue
		}
		seenUnpinned = true
		if t.GroupID != current {
			if current != NoGroup {
				closed[current] = true
			}
			if t.GroupID != NoGroup && closed[t.GroupID] {
				return fmt.Errorf("group %d is not contiguous at index %d", t.GroupID, i)
			}
			current = t.GroupID
		}
	}
	return nil
}

func groupRange(tabs []Tab, gid int) (start, size int) {
	start = -1
	for i, t := range tabs {
		if t.GroupID != gid || gid == NoGroup {
			continue
		}
		if start < 0 {
			start = i
		}
		size++
	}
	if start < 0 {
		return -1, 0
	}
	return start, size
}

func pinnedCount(tabs []Tab) int {
	n := 0
	for _, t := range tabs {
		if !t.Pinned {
			break
		}
		n++
	}
	return n
}

func removeAt(tabs []Tab, i int) []Tab {
	out := make([]Tab, 0, len(tabs)-1)
	out = append(out, tabs[:i]...)
	return append(out, tabs[i+1:]...)
}

func insertAt(tabs []Tab, i int, t Tab) []Tab {
	out := make([]Tab, 0, len(tabs)+1)
	out = append(out, tabs[:i]...)
	out = append(out, t)
	return append(out, tabs[i:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
