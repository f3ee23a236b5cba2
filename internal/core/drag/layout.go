package drag

import "github.com/example/tabdeck/internal/core/tabstrip"

// NoGroup marks an ungrouped item.
const NoGroup = tabstrip.NoGroup

// Item is a tab as seen at gesture start. Index is its position in the window's
// single ordering shared by pinned, free and grouped items.
type Item struct {
	ID      int
	Index   int
	Pinned  bool
	GroupID int
}

// Grouped reports whether the item belongs to a group.
func (i Item) Grouped() bool { return i.GroupID != NoGroup }

// Group is a tab group as seen at gesture start.
// Index is the index of its first member.
type Group struct {
	ID      int
	Index   int
	Members []Item
}

// Size returns the number of members.
func (g Group) Size() int { return len(g.Members) }

// Last returns the index of the last member.
func (g Group) Last() int { return g.Index + g.Size() - 1 }

// Has reports whether the item is a member of the group.
func (g Group) Has(itemID int) bool {
	for _, m := range g.Members {
		if m.ID == itemID {
			return true
		}
	}
	return false
}

// Layout is the snapshot of one window that a gesture is decided against.
type Layout struct {
	Pinned    []Item
	Free      []Item
	Groups    []Group
	Collapsed map[int]bool
}

// IsCollapsed reports whether the host renders the group collapsed.
func (l Layout) IsCollapsed(groupID int) bool {
	return l.Collapsed[groupID]
}

// TotalCount returns the number of items in the window.
func (l Layout) TotalCount() int {
	n := len(l.Pinned) + len(l.Free)
	for _, g := range l.Groups {
		n += g.Size()
	}
	return n
}

// LastFree returns the free item with the greatest index.
func (l Layout) LastFree() (Item, bool) {
	var last Item
	found := false
	for _, it := range l.Free {
		if !found || it.Index > last.Index {
			last, found = it, true
		}
	}
	return last, found
}

// LastGroup returns the group with the greatest index.
func (l Layout) LastGroup() (Group, bool) {
	var last Group
	found := false
	for _, g := range l.Groups {
		if !found || g.Index > last.Index {
			last, found = g, true
		}
	}
	return last, found
}

// Group returns the group with the given id.
func (l Layout) Group(id int) (*Group, bool) {
	for i := range l.Groups {
		if l.Groups[i].ID == id {
			return &l.Groups[i], true
		}
	}
	return nil, false
}

// Item finds an item by id in any container, together with its owning group.
func (l Layout) Item(id int) (Entity, bool) {
	for i := range l.Pinned {
		if l.Pinned[i].ID == id {
			return Entity{Item: &l.Pinned[i]}, true
		}
	}
	for i := range l.Free {
		if l.Free[i].ID == id {
			return Entity{Item: &l.Free[i]}, true
		}
	}
	for gi := range l.Groups {
		g := &l.Groups[gi]
		for mi := range g.Members {
			if g.Members[mi].ID == id {
				return Entity{Item: &g.Members[mi], Group: g}, true
			}
		}
	}
	return Entity{}, false
}

// Entity is what a descriptor resolves to. Item is set for item roles, Group
// for group roles and for grouped items (the owning group). Sentinels resolve
// to an empty entity.
type Entity struct {
	Item  *Item
	Group *Group
}

// Found reports whether anything was resolved.
func (e Entity) Found() bool { return e.Item != nil || e.Group != nil }

// Resolve looks up the entity a descriptor refers to.
// An item whose role is stale (e.g. "tab:" for an item that is now grouped)
// is still found in whichever container holds it.
func (l Layout) Resolve(d Descriptor) Entity {
	switch d.Role {
	case RolePinnedItem, RoleCompactPinnedItem, RoleFreeItem, RoleGroupedItem:
		if e, ok := l.Item(d.ID); ok {
			return e
		}
	case RoleGroup, RoleGroupSeparator:
		if g, ok := l.Group(d.ID); ok {
			return Entity{Group: g}
		}
	}
	return Entity{}
}

// Normalize corrects a descriptor's role to the membership of the item it
// resolved to. A compact pinned item keeps its view role.
func Normalize(d Descriptor, e Entity) Descriptor {
	if !d.Role.IsItem() || e.Item == nil {
		return d
	}
	if d.Role == RoleCompactPinnedItem && e.Item.Pinned {
		return d
	}
	if e.Group == nil && !e.Item.Pinned {
		return Descriptor{Role: RoleFreeItem, ID: e.Item.ID}
	}
	return ItemDescriptor(*e.Item)
}

// Snapshot builds a layout from a window's tabs in strip order.
func Snapshot(tabs []tabstrip.Tab, collapsed map[int]bool) Layout {
	l := Layout{Collapsed: collapsed}
	if l.Collapsed == nil {
		l.Collapsed = map[int]bool{}
	}
	groupPos := make(map[int]int)
	for i, t := range tabs {
		it := Item{ID: t.ID, Index: i, Pinned: t.Pinned, GroupID: t.GroupID}
		switch {
		case t.Pinned:
			it.GroupID = NoGroup
			l.Pinned = append(l.Pinned, it)
		case t.GroupID != NoGroup:
			pos, ok := groupPos[t.GroupID]
			if !ok {
				pos = len(l.Groups)
				groupPos[t.GroupID] = pos
				l.Groups = append(l.Groups, Group{ID: t.GroupID, Index: i})
			}
			l.Groups[pos].Members = append(l.Groups[pos].Members, it)
		default:
			l.Free = append(l.Free, it)
		}
	}
	return l
}
