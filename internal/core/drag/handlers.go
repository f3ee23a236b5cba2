package drag

import (
	"fmt"

	"github.com/example/tabdeck/internal/core/effects"
)

// dropHandler decides what happens when the active entity is dropped on a
// target of one role. It switches on the source role.
type dropHandler func(g Gesture) DropPlan

// dropHandlers is keyed by target role.
var dropHandlers = map[Role]dropHandler{
	RolePinnedItem:        dropOnPinned,
	RoleCompactPinnedItem: dropOnPinned,
	RolePinnedSeparator:   dropOnPinnedSeparator,
	RoleGroupSeparator:    dropOnGroupSeparator,
	RoleEndSeparator:      dropOnEndSeparator,
	RoleFreeItem:          dropOnFreeItem,
	RoleGroup:             dropOnGroup,
	RoleGroupedItem:       dropOnGroupedItem,
}

func dropOnPinned(g Gesture) DropPlan {
	a, over := g.Active, g.OverEntity.Item
	pinnedEnd := len(g.Layout.Pinned) - 1
	switch a.Role {
	case RoleCompactPinnedItem:
		if g.Over.Role == RoleCompactPinnedItem {
			return apply(moveItem(a.ID, pinnedPosition(g.Layout, over.ID)))
		}
		return apply(moveItem(a.ID, adjacentTarget(over.Index, g.Dir)))
	case RolePinnedItem:
		return apply(moveItem(a.ID, adjacentTarget(over.Index, g.Dir)))
	case RoleFreeItem:
		return apply(moveItem(a.ID, pinnedEnd))
	case RoleGroupedItem:
		return apply(ungroup(a.ID), moveItem(a.ID, pinnedEnd))
	case RoleGroup:
		return apply(moveGroup(a.ID, len(g.Layout.Pinned)))
	}
	return unhandled(g)
}

func dropOnPinnedSeparator(g Gesture) DropPlan {
	a := g.Active
	target := pinnedSeparatorTarget(g.Over.ID, a.Role.IsPinned(), len(g.Layout.Pinned))
	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem, RoleFreeItem:
		return apply(moveItem(a.ID, target))
	case RoleGroupedItem:
		return apply(ungroup(a.ID), moveItem(a.ID, target))
	case RoleGroup:
		return apply(moveGroup(a.ID, target))
	}
	return unhandled(g)
}

func dropOnGroupSeparator(g Gesture) DropPlan {
	a, target := g.Active, *g.OverEntity.Group
	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem:
		return pinnedSkip(g)
	case RoleFreeItem:
		return apply(moveItem(a.ID, groupTailTarget(target, g.Dir)))
	case RoleGroupedItem:
		if g.ActiveEntity.Group.ID == target.ID {
			return apply(ungroup(a.ID), moveItem(a.ID, ownGroupTailTarget(target, g.Dir)))
		}
		return apply(ungroup(a.ID), moveItem(a.ID, groupTailTarget(target, g.Dir)))
	case RoleGroup:
		return fallback(*g.ActiveEntity.Group, target)
	}
	return unhandled(g)
}

// dropOnEndSeparator only runs for sources the redirector lets through.
func dropOnEndSeparator(g Gesture) DropPlan {
	a, total := g.Active, g.Layout.TotalCount()
	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem:
		return pinnedSkip(g)
	case RoleFreeItem:
		return apply(moveItem(a.ID, endItemTarget(total)))
	case RoleGroupedItem:
		return apply(ungroup(a.ID), moveItem(a.ID, endItemTarget(total)))
	case RoleGroup:
		return apply(moveGroup(a.ID, endGroupTarget(total, g.ActiveEntity.Group.Size())))
	}
	return unhandled(g)
}

func dropOnFreeItem(g Gesture) DropPlan {
	a, over := g.Active, g.OverEntity.Item
	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem:
		return pinnedSkip(g)
	case RoleFreeItem:
		return apply(moveItem(a.ID, adjacentTarget(over.Index, g.Dir)))
	case RoleGroupedItem:
		return apply(ungroup(a.ID), moveItem(a.ID, adjacentTarget(over.Index, g.Dir)))
	case RoleGroup:
		return apply(moveGroup(a.ID, groupOntoItemTarget(over.Index, g.ActiveEntity.Group.Size(), g.Dir)))
	}
	return unhandled(g)
}

func dropOnGroup(g Gesture) DropPlan {
	a, target := g.Active, *g.OverEntity.Group
	collapsed := g.Layout.IsCollapsed(target.ID)

	// joinTarget appends at the tail of a collapsed group and inserts at the
	// head of an expanded one.
	joinTarget := groupHeadTarget(target, g.Dir)
	if collapsed {
		joinTarget = groupTailTarget(target, g.Dir)
	}

	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem:
		return pinnedSkip(g)
	case RoleFreeItem:
		return apply(groupInto(a.ID, target.ID), moveItem(a.ID, joinTarget))
	case RoleGroupedItem:
		if g.ActiveEntity.Group.ID == target.ID {
			if collapsed {
				return apply(moveItem(a.ID, groupTailTarget(target, g.Dir)))
			}
			return apply(moveItem(a.ID, groupIndex(target)))
		}
		return apply(ungroup(a.ID), groupInto(a.ID, target.ID), moveItem(a.ID, joinTarget))
	case RoleGroup:
		return fallback(*g.ActiveEntity.Group, target)
	}
	return unhandled(g)
}

func dropOnGroupedItem(g Gesture) DropPlan {
	a, over, owner := g.Active, g.OverEntity.Item, *g.OverEntity.Group
	target := adjacentTarget(over.Index, g.Dir)
	switch a.Role {
	case RolePinnedItem, RoleCompactPinnedItem:
		return pinnedSkip(g)
	case RoleFreeItem:
		return apply(groupInto(a.ID, owner.ID), moveItem(a.ID, target))
	case RoleGroupedItem:
		if g.ActiveEntity.Group.ID == owner.ID {
			return apply(moveItem(a.ID, target))
		}
		return apply(ungroup(a.ID), groupInto(a.ID, owner.ID), moveItem(a.ID, target))
	case RoleGroup:
		return fallback(*g.ActiveEntity.Group, owner)
	}
	return unhandled(g)
}

func apply(steps ...effects.Effect) DropPlan {
	return DropPlan{Kind: PlanApply, Steps: steps}
}

func fallback(active, neighbor Group) DropPlan {
	return DropPlan{
		Kind: PlanApply,
		GroupFallback: &GroupFallback{
			ActiveGroupID:   active.ID,
			NeighborGroupID: neighbor.ID,
			ActiveIndex:     groupIndex(active),
			ActiveSize:      active.Size(),
		},
	}
}

func pinnedSkip(g Gesture) DropPlan {
	return DropPlan{
		Kind:   PlanSkip,
		Reason: fmt.Sprintf("pinned %s cannot leave the pinned strip via %s", g.Active, g.Over.Role),
	}
}

func unhandled(g Gesture) DropPlan {
	return DropPlan{
		Kind:   PlanSkip,
		Reason: fmt.Sprintf("no rule for %s onto %s", g.Active.Role, g.Over.Role),
	}
}

func moveItem(id, index int) effects.Effect {
	return effects.MoveItemEffect{ItemID: id, Index: index}
}

func moveGroup(id, index int) effects.Effect {
	return effects.MoveGroupEffect{GroupID: id, Index: index}
}

func ungroup(id int) effects.Effect {
	return effects.UngroupItemEffect{ItemID: id}
}

func groupInto(id, groupID int) effects.Effect {
	return effects.GroupItemsEffect{ItemIDs: []int{id}, GroupID: groupID}
}
