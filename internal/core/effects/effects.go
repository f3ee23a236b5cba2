// Package effects defines effect types as data structures representing store mutations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "fmt"

// Effect is the base interface for all effects.
// Effects represent store calls as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// MoveItemEffect repositions a single item within its window's ordering.
type MoveItemEffect struct {
	ItemID int
	Index  int
}

func (e MoveItemEffect) EffectType() string { return "move_item" }

func (e MoveItemEffect) String() string {
	return fmt.Sprintf("moveItem(%d, %d)", e.ItemID, e.Index)
}

// MoveGroupEffect repositions a whole group so its first member lands at Index.
type MoveGroupEffect struct {
	GroupID int
	Index   int
}

func (e MoveGroupEffect) EffectType() string { return "move_group" }

func (e MoveGroupEffect) String() string {
	return fmt.Sprintf("moveGroup(%d, %d)", e.GroupID, e.Index)
}

// GroupItemsEffect adds items to a group at its current tail.
// GroupID 0 asks the store for a new group.
type GroupItemsEffect struct {
	ItemIDs []int
	GroupID int
}

func (e GroupItemsEffect) EffectType() string { return "group_items" }

func (e GroupItemsEffect) String() string {
	return fmt.Sprintf("groupItems(%v, %d)", e.ItemIDs, e.GroupID)
}

// UngroupItemEffect removes an item from its group.
type UngroupItemEffect struct {
	ItemID int
}

func (e UngroupItemEffect) EffectType() string { return "ungroup_item" }

func (e UngroupItemEffect) String() string {
	return fmt.Sprintf("ungroupItem(%d)", e.ItemID)
}

// SetPinnedEffect pins or unpins an item.
type SetPinnedEffect struct {
	ItemID int
	Pinned bool
}

func (e SetPinnedEffect) EffectType() string { return "set_pinned" }

// NewWindow refers to the window created earlier in the same effect sequence.
const NewWindow = -1

// NewGroup refers to the group created earlier in the same effect sequence.
const NewGroup = -1

// CreateWindowEffect opens a new window. Later effects address it as NewWindow.
type CreateWindowEffect struct{}

func (e CreateWindowEffect) EffectType() string { return "create_window" }

// MoveItemToWindowEffect relocates an item to the end of another window.
type MoveItemToWindowEffect struct {
	ItemID   int
	WindowID int
}

func (e MoveItemToWindowEffect) EffectType() string { return "move_item_to_window" }

// MoveGroupToWindowEffect relocates a whole group to the end of another window.
type MoveGroupToWindowEffect struct {
	GroupID  int
	WindowID int
}

func (e MoveGroupToWindowEffect) EffectType() string { return "move_group_to_window" }

// UpdateGroupEffect restores a group's title and colour.
type UpdateGroupEffect struct {
	GroupID int
	Title   string
	Color   string
}

func (e UpdateGroupEffect) EffectType() string { return "update_group" }

// FocusWindowEffect brings a window to the front.
type FocusWindowEffect struct {
	WindowID int
}

func (e FocusWindowEffect) EffectType() string { return "focus_window" }

// Assignment subjects.
const (
	SubjectItem  = "item"
	SubjectGroup = "group"
)

// AssignWorkspaceEffect assigns an item or group to a workspace.
// WorkspaceID 0 clears the assignment.
type AssignWorkspaceEffect struct {
	Subject     string
	ID          int
	WorkspaceID int
}

func (e AssignWorkspaceEffect) EffectType() string { return "assign_workspace" }

// ReorderByWorkspaceEffect schedules a debounced re-sort of a window by workspace.
type ReorderByWorkspaceEffect struct {
	WindowID int
}

func (e ReorderByWorkspaceEffect) EffectType() string { return "reorder_by_workspace" }

// LogEffect records a structured event through the event sink.
type LogEffect struct {
	Phase  string
	Fields map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// Flatten expands composite effects into the sequence they execute in.
func Flatten(effs []Effect) []Effect {
	out := make([]Effect, 0, len(effs))
	for _, e := range effs {
		if c, ok := e.(CompositeEffect); ok {
			out = append(out, Flatten(c.Effects)...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }

// IsMutation reports whether an effect issues a store call.
func IsMutation(e Effect) bool {
	switch typed := e.(type) {
	case MoveItemEffect, MoveGroupEffect, GroupItemsEffect, UngroupItemEffect, SetPinnedEffect:
		return true
	case MoveItemToWindowEffect, MoveGroupToWindowEffect, UpdateGroupEffect, AssignWorkspaceEffect:
		return true
	case CompositeEffect:
		for _, inner := range typed.Effects {
			if IsMutation(inner) {
				return true
			}
		}
	}
	return false
}
