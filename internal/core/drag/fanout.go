package drag

import (
	"slices"
	"sort"

	"github.com/example/tabdeck/internal/core/effects"
)

// FanOut is a multi-selection drag: the anchor replaces the dragged item and
// the followers are placed behind it once it has moved.
type FanOut struct {
	Anchor    Descriptor
	AnchorID  int
	Followers []int // ascending original index
}

// PlanFanOut decides whether a gesture fans out over the selection. It does
// when the selection has more than one member and contains the dragged item.
// The anchor is the selected item with the lowest index.
func PlanFanOut(selection []int, active Descriptor, l Layout) (FanOut, bool) {
	if len(selection) < 2 || !active.Role.IsItem() || !slices.Contains(selection, active.ID) {
		return FanOut{}, false
	}

	var items []Item
	for _, id := range selection {
		if e, ok := l.Item(id); ok {
			items = append(items, *e.Item)
		}
	}
	if len(items) < 2 {
		return FanOut{}, false
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Index < items[j].Index })

	anchor, _ := l.Item(items[0].ID)
	fo := FanOut{
		Anchor:   Normalize(ItemDescriptor(*anchor.Item), anchor),
		AnchorID: items[0].ID,
	}
	for _, it := range items[1:] {
		fo.Followers = append(fo.Followers, it.ID)
	}
	return fo, true
}

// FollowerMembership returns the membership change that brings a follower in
// line with the anchor: join the anchor's group, or leave its own group when
// the anchor is ungrouped. It returns NoEffect when nothing changes.
func FollowerMembership(anchorGroupID int, follower Item) effects.Effect {
	switch {
	case follower.Pinned:
		return effects.NoEffect{}
	case anchorGroupID != NoGroup && follower.GroupID != anchorGroupID:
		return effects.GroupItemsEffect{ItemIDs: []int{follower.ID}, GroupID: anchorGroupID}
	case anchorGroupID == NoGroup && follower.GroupID != NoGroup:
		return effects.UngroupItemEffect{ItemID: follower.ID}
	}
	return effects.NoEffect{}
}

// FollowerTarget returns the index that puts a follower right after the tail,
// the item placed before it. Both indices must be read after the previous move.
func FollowerTarget(tailIndex, followerIndex int) int {
	if followerIndex > tailIndex {
		return tailIndex + 1
	}
	return tailIndex
}
