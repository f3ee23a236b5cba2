package drag

// RedirectEndSeparator rewrites a drop onto the end separator into a drop onto
// the last concrete entity: "tab:<id>" for the last free item or
// "group-separator:<id>" for the last group, whichever sits lower.
// ok is false when there is nothing to redirect to and the gesture is a no-op.
// Descriptors other than the end separator, and pinned sources, pass through.
func RedirectEndSeparator(active, over Descriptor, l Layout) (Descriptor, bool) {
	if over.Role != RoleEndSeparator {
		return over, true
	}
	switch active.Role {
	case RoleFreeItem, RoleGroupedItem, RoleGroup:
	default:
		return over, true
	}

	item, hasItem := l.LastFree()
	group, hasGroup := l.LastGroup()
	switch {
	case hasItem && (!hasGroup || item.Index > group.Index):
		return Descriptor{Role: RoleFreeItem, ID: item.ID}, true
	case hasGroup:
		return Descriptor{Role: RoleGroupSeparator, ID: group.ID}, true
	default:
		return Descriptor{}, false
	}
}
