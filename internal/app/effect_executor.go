// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place store calls happen.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// ReorderScheduler queues a debounced re-sort of a window by workspace.
type ReorderScheduler interface {
	Schedule(windowID int)
}

// StoreEffectExecutor implements EffectExecutor against the store ports.
type StoreEffectExecutor struct {
	tabs       secondary.TabStore
	windows    secondary.WindowStore
	workspaces secondary.WorkspaceStore
	reorderer  ReorderScheduler
	sink       secondary.EventSink
}

// NewEffectExecutor creates a new StoreEffectExecutor.
func NewEffectExecutor(
	tabs secondary.TabStore,
	windows secondary.WindowStore,
	workspaces secondary.WorkspaceStore,
	reorderer ReorderScheduler,
	sink secondary.EventSink,
) *StoreEffectExecutor {
	return &StoreEffectExecutor{
		tabs:       tabs,
		windows:    windows,
		workspaces: workspaces,
		reorderer:  reorderer,
		sink:       sink,
	}
}

// createdIDs tracks entities created earlier in one Execute call.
type createdIDs struct {
	window int
	group  int
}

// Execute processes a slice of effects, executing each in sequence and
// stopping at the first failure.
func (e *StoreEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	return e.execute(ctx, effs, &createdIDs{})
}

func (e *StoreEffectExecutor) execute(ctx context.Context, effs []effects.Effect, created *createdIDs) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff, created); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *StoreEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, created *createdIDs) error {
	switch typed := eff.(type) {
	case effects.MoveItemEffect:
		return e.tabs.MoveItem(ctx, typed.ItemID, typed.Index)
	case effects.MoveGroupEffect:
		return e.executeMoveGroup(ctx, typed)
	case effects.GroupItemsEffect:
		gid, err := e.tabs.GroupItems(ctx, typed.ItemIDs, typed.GroupID)
		if err != nil {
			return err
		}
		if typed.GroupID == 0 {
			created.group = gid
		}
		return nil
	case effects.UngroupItemEffect:
		return e.tabs.UngroupItem(ctx, typed.ItemID)
	case effects.SetPinnedEffect:
		return e.tabs.SetPinned(ctx, typed.ItemID, typed.Pinned)
	case effects.UpdateGroupEffect:
		gid, err := created.resolveGroup(typed.GroupID)
		if err != nil {
			return err
		}
		return e.tabs.UpdateGroup(ctx, gid, typed.Title, typed.Color)
	case effects.CreateWindowEffect:
		w, err := e.windows.CreateWindow(ctx)
		if err != nil {
			return err
		}
		created.window = w.ID
		return nil
	case effects.MoveItemToWindowEffect:
		wid, err := created.resolveWindow(typed.WindowID)
		if err != nil {
			return err
		}
		return e.windows.MoveItemToWindow(ctx, typed.ItemID, wid)
	case effects.MoveGroupToWindowEffect:
		wid, err := created.resolveWindow(typed.WindowID)
		if err != nil {
			return err
		}
		return e.windows.MoveGroupToWindow(ctx, typed.GroupID, wid)
	case effects.FocusWindowEffect:
		wid, err := created.resolveWindow(typed.WindowID)
		if err != nil {
			return err
		}
		return e.windows.FocusWindow(ctx, wid)
	case effects.AssignWorkspaceEffect:
		if typed.WorkspaceID == 0 {
			return e.workspaces.ClearWorkspaceAssignment(ctx, typed.Subject, typed.ID)
		}
		return e.workspaces.AssignToWorkspace(ctx, typed.Subject, typed.ID, typed.WorkspaceID)
	case effects.ReorderByWorkspaceEffect:
		e.reorderer.Schedule(typed.WindowID)
		return nil
	case effects.CompositeEffect:
		return e.execute(ctx, typed.Effects, created)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.sink.Record(ctx, typed.Phase, typed.Fields)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// executeMoveGroup retries once one slot earlier when the store rejects the
// target as the middle of another group.
func (e *StoreEffectExecutor) executeMoveGroup(ctx context.Context, eff effects.MoveGroupEffect) error {
	err := e.tabs.MoveGroup(ctx, eff.GroupID, eff.Index)
	if !errors.Is(err, secondary.ErrMiddleOfGroup) {
		return err
	}
	e.sink.Record(ctx, "executor.retry", map[string]any{
		"group_id": eff.GroupID,
		"index":    eff.Index,
		"retry":    eff.Index - 1,
	})
	return e.tabs.MoveGroup(ctx, eff.GroupID, eff.Index-1)
}

func (c *createdIDs) resolveWindow(id int) (int, error) {
	if id != effects.NewWindow {
		return id, nil
	}
	if c.window == 0 {
		return 0, fmt.Errorf("no window created earlier in sequence")
	}
	return c.window, nil
}

func (c *createdIDs) resolveGroup(id int) (int, error) {
	if id != effects.NewGroup {
		return id, nil
	}
	if c.group == 0 {
		return 0, fmt.Errorf("no group created earlier in sequence")
	}
	return c.group, nil
}

var _ EffectExecutor = (*StoreEffectExecutor)(nil)
