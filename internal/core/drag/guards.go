package drag

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// NoOpContext provides context for no-op detection.
type NoOpContext struct {
	Gesture
}

// CheckNoOp evaluates whether a gesture would leave the active entity where it is.
// Allowed is false for a no-op; Reason names the case.
// Each case computes the same target index its drop handler would request.
func CheckNoOp(ctx NoOpContext) GuardResult {
	a := ctx.Active
	if r := CheckSelfDrop(a, ctx.Over); !r.Allowed {
		return r
	}

	current := ActiveIndex(ctx.ActiveEntity)
	target, reason, ok := noOpTarget(ctx)
	if !ok || target != current {
		return GuardResult{Allowed: true}
	}
	return noOp("%s: %s already at index %d", reason, a, current)
}

// CheckSelfDrop rejects a drop of an entity onto itself. It compares the
// descriptors as dragged, so it must run before a multi-selection swaps the
// active descriptor for its anchor.
func CheckSelfDrop(active, over Descriptor) GuardResult {
	if active.Role.IsItem() && over.Role.IsItem() && active.ID == over.ID {
		return noOp("dropped on itself: %s", active)
	}
	if active.Role == RoleGroup && (over.Role == RoleGroup || over.Role == RoleGroupSeparator) && active.ID == over.ID {
		return noOp("group %d dropped on itself", active.ID)
	}
	return GuardResult{Allowed: true}
}

func noOp(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// noOpTarget returns the index the handler for this pair would request and
// whether the pair is one that can be a no-op at all.
func noOpTarget(ctx NoOpContext) (int, string, bool) {
	a, o := ctx.Active, ctx.Over
	ae, oe := ctx.ActiveEntity, ctx.OverEntity
	l, dir := ctx.Layout, ctx.Dir

	switch {
	case a.Role == RoleCompactPinnedItem && o.Role == RoleCompactPinnedItem:
		return pinnedPosition(l, o.ID), "compact pinned reorder", true

	case a.Role.IsPinned() && o.Role.IsPinned():
		return adjacentTarget(oe.Item.Index, dir), "pinned onto pinned", true

	case a.Role == RoleFreeItem && o.Role == RoleFreeItem:
		return adjacentTarget(oe.Item.Index, dir), "free onto free", true

	case a.Role == RoleGroupedItem && o.Role == RoleGroupedItem && ae.Group.ID == oe.Group.ID:
		return adjacentTarget(oe.Item.Index, dir), "grouped onto same group", true

	case a.Role == RoleFreeItem && o.Role == RoleGroupSeparator:
		return groupTailTarget(*oe.Group, dir), "free onto group separator", true

	case a.Role == RoleGroupedItem && o.Role == RoleGroup && ae.Group.ID == oe.Group.ID:
		if l.IsCollapsed(oe.Group.ID) {
			return groupTailTarget(*oe.Group, dir), "grouped onto own collapsed group", true
		}
		return groupIndex(*oe.Group), "grouped onto own group", true

	case a.Role == RoleFreeItem && o.Role == RoleEndSeparator:
		return endItemTarget(l.TotalCount()), "free onto end", true

	case a.Role == RoleGroup && o.Role == RoleEndSeparator:
		return endGroupTarget(l.TotalCount(), ae.Group.Size()), "group onto end", true

	case a.Role == RoleGroup && o.Role == RoleFreeItem:
		return groupOntoItemTarget(oe.Item.Index, ae.Group.Size(), dir), "group onto free", true

	case a.Role == RoleGroup && o.Role == RoleGroupedItem:
		return fallbackTarget(*oe.Group, *ae.Group), "group onto grouped", true

	case a.Role == RoleGroup && (o.Role == RoleGroup || o.Role == RoleGroupSeparator):
		return fallbackTarget(*oe.Group, *ae.Group), "group onto group", true

	case o.Role == RolePinnedSeparator && (a.Role.IsPinned() || a.Role == RoleFreeItem):
		return pinnedSeparatorTarget(o.ID, a.Role.IsPinned(), len(l.Pinned)), "onto pinned separator", true
	}
	return 0, "", false
}

func fallbackTarget(neighbor, active Group) int {
	return GroupFallbackTarget(groupIndex(neighbor), neighbor.Size(), groupIndex(active), active.Size())
}

// pinnedPosition returns the array position of a pinned item.
func pinnedPosition(l Layout, id int) int {
	for i, it := range l.Pinned {
		if it.ID == id {
			return i
		}
	}
	return -1
}
