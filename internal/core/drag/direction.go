package drag

// Direction is the relative movement of the active entity against the target.
type Direction struct {
	Up bool
}

// OneIfUp is 1 when moving up the list.
func (d Direction) OneIfUp() int {
	if d.Up {
		return 1
	}
	return 0
}

// OneIfDown is 1 when moving down the list.
func (d Direction) OneIfDown() int {
	return 1 - d.OneIfUp()
}

// ComputeDirection returns up when the active index lies below the over index.
func ComputeDirection(activeIndex, overIndex int) Direction {
	return Direction{Up: activeIndex-overIndex > 0}
}

// ActiveIndex returns the current index of the dragged entity.
func ActiveIndex(e Entity) int {
	if e.Item != nil {
		return e.Item.Index
	}
	if e.Group != nil {
		return groupIndex(*e.Group)
	}
	return -1
}

// OverIndex returns the index the target stands for when deciding direction.
func OverIndex(over Descriptor, e Entity, l Layout) int {
	switch over.Role {
	case RolePinnedSeparator:
		if over.ID == PinnedSeparatorTop {
			return 0
		}
		return len(l.Pinned)
	case RoleEndSeparator:
		return l.TotalCount()
	}
	if e.Item != nil {
		return e.Item.Index
	}
	if e.Group != nil {
		return groupIndex(*e.Group)
	}
	return -1
}

// groupIndex is the group's index, or its first member's index when the
// snapshot does not carry one.
func groupIndex(g Group) int {
	if g.Index >= 0 || g.Size() == 0 {
		return g.Index
	}
	return g.Members[0].Index
}

// The target formulas below are shared by the drop handlers and the no-op
// validator so both always agree on where a drop lands.

// adjacentTarget places an item next to an anchor row: after it when coming
// from below, onto its slot when coming from above.
func adjacentTarget(overIndex int, dir Direction) int {
	return overIndex + dir.OneIfUp()
}

// groupTailTarget places an item right after group g: outside it from below,
// at its tail from above.
func groupTailTarget(g Group, dir Direction) int {
	return groupIndex(g) + g.Size() - dir.OneIfDown()
}

// ownGroupTailTarget is groupTailTarget for a member of g. Ungrouping shrinks
// g before the move, which costs one slot when coming from below.
func ownGroupTailTarget(g Group, dir Direction) int {
	return groupTailTarget(g, dir) - dir.OneIfUp()
}

// groupHeadTarget places an item at the head of expanded group g.
func groupHeadTarget(g Group, dir Direction) int {
	return groupIndex(g) - dir.OneIfDown()
}

// groupOntoItemTarget places a group of activeSize next to an item.
func groupOntoItemTarget(overIndex, activeSize int, dir Direction) int {
	if dir.Up {
		return overIndex + 1
	}
	return overIndex - activeSize + 1
}

// pinnedSeparatorTarget is the landing index for a drop on a pinned separator.
func pinnedSeparatorTarget(ordinal int, pinnedSource bool, pinnedCount int) int {
	if ordinal == PinnedSeparatorTop && pinnedSource {
		return 0
	}
	return pinnedCount
}

// endItemTarget is where an item dropped on the end separator lands.
func endItemTarget(total int) int {
	return total
}

// endGroupTarget is where a group dropped on the end separator lands.
func endGroupTarget(total, activeSize int) int {
	return total + 1 - activeSize
}

// GroupFallbackTarget places a group right after a neighbouring group whose live
// range is [neighborIndex, neighborIndex+neighborSize). When that point lies
// past the active group, the active group's own removal shifts it back by
// activeSize.
func GroupFallbackTarget(neighborIndex, neighborSize, activeIndex, activeSize int) int {
	raw := neighborIndex + neighborSize
	if raw > activeIndex {
		return max(raw-activeSize, 0)
	}
	return raw
}
