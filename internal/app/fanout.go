package app

import (
	"context"
	"fmt"

	"github.com/example/tabdeck/internal/core/drag"
	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/ports/primary"
)

// planFanOut reads the selection and, when the dragged item is part of a
// multi-selection, returns the anchor that replaces it.
func (s *GestureServiceImpl) planFanOut(ctx context.Context, active drag.Descriptor, layout drag.Layout) (drag.FanOut, bool) {
	sel, err := s.selection.GetSelection(ctx)
	if err != nil {
		s.sink.Record(ctx, "selection.read_failed", map[string]any{"error": err.Error()})
		return drag.FanOut{}, false
	}
	return drag.PlanFanOut(sel.IDs, active, layout)
}

// applyFanOut moves each follower directly behind the previous one, re-reading
// positions before every step since each move shifts its neighbours.
func (s *GestureServiceImpl) applyFanOut(ctx context.Context, fo drag.FanOut, result *primary.GestureResult) error {
	anchor, err := s.tabs.GetItem(ctx, fo.AnchorID)
	if err != nil {
		return fmt.Errorf("failed to read item %d: %w", fo.AnchorID, err)
	}

	tailID := fo.AnchorID
	for _, id := range fo.Followers {
		follower, err := s.tabs.GetItem(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read item %d: %w", id, err)
		}
		if follower.WindowID != anchor.WindowID {
			continue
		}
		if eff := drag.FollowerMembership(anchor.GroupID, itemFromRecord(follower)); effects.IsMutation(eff) {
			if err := s.step(ctx, eff, result); err != nil {
				return err
			}
		}

		tail, err := s.tabs.GetItem(ctx, tailID)
		if err != nil {
			return fmt.Errorf("failed to read item %d: %w", tailID, err)
		}
		follower, err = s.tabs.GetItem(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read item %d: %w", id, err)
		}
		target := drag.FollowerTarget(tail.Index, follower.Index)
		if err := s.step(ctx, effects.MoveItemEffect{ItemID: id, Index: target}, result); err != nil {
			return err
		}
		tailID = id
	}
	return nil
}
