package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tabdeck/internal/core/drag"
	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/core/route"
	"github.com/example/tabdeck/internal/ctxutil"
	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// DefaultRecentlyMoved is how long a moved row stays highlighted.
const DefaultRecentlyMoved = 520 * time.Millisecond

// GestureServiceImpl implements the GestureService interface.
type GestureServiceImpl struct {
	tabs          secondary.TabStore
	selection     secondary.SelectionStore
	router        *Router
	executor      EffectExecutor
	sink          secondary.EventSink
	recentlyMoved time.Duration
}

// GestureOption configures a GestureServiceImpl.
type GestureOption func(*GestureServiceImpl)

// WithRecentlyMoved overrides the highlight duration passed to MarkRecentlyMoved.
func WithRecentlyMoved(d time.Duration) GestureOption {
	return func(s *GestureServiceImpl) { s.recentlyMoved = d }
}

// NewGestureService creates a new GestureService implementation.
func NewGestureService(
	tabs secondary.TabStore,
	selection secondary.SelectionStore,
	router *Router,
	executor EffectExecutor,
	sink secondary.EventSink,
	opts ...GestureOption,
) *GestureServiceImpl {
	s := &GestureServiceImpl{
		tabs:          tabs,
		selection:     selection,
		router:        router,
		executor:      executor,
		sink:          sink,
		recentlyMoved: DefaultRecentlyMoved,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleGestureEnd decides and applies one drag gesture. Store failures during
// an in-container reorder never surface as errors: the host is asked to reload
// and the result reports OutcomeResynced. Cross-container failures are returned.
func (s *GestureServiceImpl) HandleGestureEnd(ctx context.Context, req primary.GestureRequest) (*primary.GestureResult, error) {
	ctx, gestureID := ctxutil.WithGestureID(ctx)
	result := &primary.GestureResult{GestureID: gestureID}
	defer req.Callbacks.NotifyClearDragState()

	s.sink.Record(ctx, "gesture.start", map[string]any{
		"active":    req.ActiveID,
		"over":      req.OverID,
		"container": req.ContainerID,
	})

	zone, isZone, err := route.ParseZone(req.OverID)
	if isZone {
		if err != nil {
			return s.parseFailed(ctx, req, result, err), nil
		}
		if err := s.router.Route(ctx, zone, req, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	active, err := drag.ParseDescriptor(req.ActiveID)
	if err != nil {
		return s.parseFailed(ctx, req, result, err), nil
	}
	var over drag.Descriptor
	if req.OverID != "" {
		over, err = drag.ParseDescriptor(req.OverID)
		if err != nil {
			return s.parseFailed(ctx, req, result, err), nil
		}
	}

	if self := drag.CheckSelfDrop(active, over); !self.Allowed {
		result.Outcome = primary.OutcomeNoOp
		result.Reason = self.Reason
		s.sink.Record(ctx, "gesture.noop", map[string]any{"reason": self.Reason})
		return result, nil
	}

	layout := layoutFromRequest(req)
	fo, fanOut := s.planFanOut(ctx, active, layout)
	if fanOut {
		active = fo.Anchor
		s.sink.Record(ctx, "gesture.fanout", map[string]any{
			"anchor":    fo.AnchorID,
			"followers": fo.Followers,
		})
	}

	plan := drag.GenerateDropPlan(drag.DropPlanInput{Active: active, Over: over, Layout: layout})
	result.Reason = plan.Reason
	switch plan.Kind {
	case drag.PlanNoOp:
		result.Outcome = primary.OutcomeNoOp
		s.sink.Record(ctx, "gesture.noop", map[string]any{"reason": plan.Reason})
		return result, nil
	case drag.PlanSkip:
		result.Outcome = primary.OutcomeSkipped
		s.sink.Record(ctx, "gesture.skipped", map[string]any{"reason": plan.Reason})
		return result, nil
	}

	s.sink.Record(ctx, "gesture.plan", map[string]any{
		"active": plan.Active.String(),
		"over":   plan.Over.String(),
		"up":     plan.Up,
		"steps":  len(plan.Steps),
	})

	if err := s.applyPlan(ctx, plan, result); err != nil {
		return s.resync(ctx, req, result, err), nil
	}
	if fanOut {
		if err := s.applyFanOut(ctx, fo, result); err != nil {
			return s.resync(ctx, req, result, err), nil
		}
		if err := s.selection.ClearSelection(ctx); err != nil {
			s.sink.Record(ctx, "selection.clear_failed", map[string]any{"error": err.Error()})
		}
	}

	req.Callbacks.NotifyRecentlyMoved(plan.Active.ID, s.recentlyMoved)
	result.Outcome = primary.OutcomeApplied
	s.sink.Record(ctx, "gesture.applied", map[string]any{"steps": result.Steps})
	return result, nil
}

// applyPlan issues the plan's steps one at a time, then the group fallback
// computed from live indices.
func (s *GestureServiceImpl) applyPlan(ctx context.Context, plan drag.DropPlan, result *primary.GestureResult) error {
	for _, eff := range plan.Effects() {
		if err := s.step(ctx, eff, result); err != nil {
			return err
		}
	}
	if !plan.NeedsFallback() {
		return nil
	}

	fb := plan.GroupFallback
	neighbor, err := s.tabs.GetGroup(ctx, fb.NeighborGroupID)
	if err != nil {
		return fmt.Errorf("failed to read group %d: %w", fb.NeighborGroupID, err)
	}
	activeIndex := fb.ActiveIndex
	if current, err := s.tabs.GetGroup(ctx, fb.ActiveGroupID); err == nil {
		activeIndex = current.Index
	}
	target := drag.GroupFallbackTarget(neighbor.Index, len(neighbor.MemberIDs), activeIndex, fb.ActiveSize)
	s.sink.Record(ctx, "gesture.fallback", map[string]any{
		"neighbor": fb.NeighborGroupID,
		"target":   target,
	})
	return s.step(ctx, effects.MoveGroupEffect{GroupID: fb.ActiveGroupID, Index: target}, result)
}

func (s *GestureServiceImpl) step(ctx context.Context, eff effects.Effect, result *primary.GestureResult) error {
	if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
		return err
	}
	desc := describeEffect(eff)
	result.Steps = append(result.Steps, desc)
	s.sink.Record(ctx, "gesture.step", map[string]any{"call": desc})
	return nil
}

func (s *GestureServiceImpl) parseFailed(ctx context.Context, req primary.GestureRequest, result *primary.GestureResult, err error) *primary.GestureResult {
	result.Outcome = primary.OutcomeParseFailed
	result.Reason = err.Error()
	s.sink.Record(ctx, "gesture.parse_failed", map[string]any{
		"active": req.ActiveID,
		"over":   req.OverID,
		"error":  err.Error(),
	})
	return result
}

func (s *GestureServiceImpl) resync(ctx context.Context, req primary.GestureRequest, result *primary.GestureResult, err error) *primary.GestureResult {
	result.Outcome = primary.OutcomeResynced
	result.Reason = err.Error()
	result.Failure = err
	s.sink.Record(ctx, "gesture.resync", map[string]any{
		"error": err.Error(),
		"steps": result.Steps,
	})
	req.Callbacks.NotifyReload()
	return result
}

// layoutFromRequest converts the host's rendered snapshot into planner input.
func layoutFromRequest(req primary.GestureRequest) drag.Layout {
	l := drag.Layout{Collapsed: req.Collapsed}
	for _, it := range req.Pinned {
		l.Pinned = append(l.Pinned, drag.Item(it))
	}
	for _, it := range req.Free {
		l.Free = append(l.Free, drag.Item(it))
	}
	for _, g := range req.Groups {
		group := drag.Group{ID: g.ID, Index: g.Index}
		for _, m := range g.Members {
			group.Members = append(group.Members, drag.Item(m))
		}
		l.Groups = append(l.Groups, group)
	}
	return l
}

func itemFromRecord(r *secondary.ItemRecord) drag.Item {
	return drag.Item{ID: r.ID, Index: r.Index, Pinned: r.Pinned, GroupID: r.GroupID}
}

func describeEffect(eff effects.Effect) string {
	if s, ok := eff.(fmt.Stringer); ok {
		return s.String()
	}
	return eff.EffectType()
}

var _ primary.GestureService = (*GestureServiceImpl)(nil)
