package drag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/core/tabstrip"
)

func p(id int) tabstrip.Tab { return tabstrip.Tab{ID: id, Pinned: true, GroupID: NoGroup} }

func f(id int) tabstrip.Tab { return tabstrip.Tab{ID: id, GroupID: NoGroup} }

func g(id, gid int) tabstrip.Tab { return tabstrip.Tab{ID: id, GroupID: gid} }

func collapsed(ids ...int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func plan(t *testing.T, l Layout, active, over string) DropPlan {
	t.Helper()
	in := DropPlanInput{Active: MustParse(active), Layout: l}
	if over != "" {
		in.Over = MustParse(over)
	}
	return GenerateDropPlan(in)
}

// applyPlan runs a plan against a strip the way the executor does: in order,
// with the live group fallback and one retry for a structural conflict.
func applyPlan(t *testing.T, s *tabstrip.Strip, dp DropPlan) {
	t.Helper()
	steps := dp.Effects()
	if dp.GroupFallback != nil {
		fb := dp.GroupFallback
		start, size := s.GroupRange(fb.NeighborGroupID)
		steps = append(steps, effects.MoveGroupEffect{
			GroupID: fb.ActiveGroupID,
			Index:   GroupFallbackTarget(start, size, fb.ActiveIndex, fb.ActiveSize),
		})
	}
	for _, step := range steps {
		var err error
		switch e := step.(type) {
		case effects.MoveItemEffect:
			err = s.Move(e.ItemID, e.Index)
		case effects.MoveGroupEffect:
			err = s.MoveGroup(e.GroupID, e.Index)
			if errors.Is(err, tabstrip.ErrMiddleOfGroup) {
				err = s.MoveGroup(e.GroupID, e.Index-1)
			}
			if errors.Is(err, tabstrip.ErrMiddleOfGroup) {
				return
			}
		case effects.GroupItemsEffect:
			err = s.Group(e.ItemIDs, e.GroupID)
		case effects.UngroupItemEffect:
			err = s.Ungroup(e.ItemID)
		default:
			t.Fatalf("unexpected effect %T", step)
		}
		require.NoError(t, err)
	}
}

func order(s *tabstrip.Strip) []int {
	var out []int
	for _, tab := range s.Tabs() {
		out = append(out, tab.ID)
	}
	return out
}
