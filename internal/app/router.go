package app

import (
	"context"
	"fmt"

	"github.com/example/tabdeck/internal/core/drag"
	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/core/route"
	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/ports/secondary"
)

// Router handles drops onto workspace and window zones. These bypass the
// reorder planner entirely.
type Router struct {
	tabs      secondary.TabStore
	selection secondary.SelectionStore
	executor  EffectExecutor
	sink      secondary.EventSink
}

// NewRouter creates a new Router.
func NewRouter(tabs secondary.TabStore, selection secondary.SelectionStore, executor EffectExecutor, sink secondary.EventSink) *Router {
	return &Router{
		tabs:      tabs,
		selection: selection,
		executor:  executor,
		sink:      sink,
	}
}

// Route applies a cross-container drop. Failures are recorded and returned.
func (r *Router) Route(ctx context.Context, zone route.Zone, req primary.GestureRequest, result *primary.GestureResult) error {
	if zone.Kind == route.ZoneWindowGap {
		result.Outcome = primary.OutcomeIgnored
		result.Reason = "dropped on window gap"
		r.sink.Record(ctx, "route.ignored", map[string]any{"zone": zone.String()})
		return nil
	}

	active, err := drag.ParseDescriptor(req.ActiveID)
	if err != nil {
		result.Outcome = primary.OutcomeParseFailed
		result.Reason = err.Error()
		r.sink.Record(ctx, "gesture.parse_failed", map[string]any{"active": req.ActiveID, "error": err.Error()})
		return nil
	}

	subjects, err := r.subjects(ctx, active)
	if err != nil {
		return r.fail(ctx, zone, err)
	}
	if len(subjects) == 0 {
		result.Outcome = primary.OutcomeIgnored
		result.Reason = fmt.Sprintf("%s cannot be routed", active)
		return nil
	}

	var effs []effects.Effect
	if zone.IsWorkspace() {
		effs = route.GenerateWorkspacePlan(route.WorkspacePlanInput{
			Zone:     zone,
			Subjects: subjects,
			WindowID: req.ContainerID,
		}).Effects()
	} else {
		effs = route.GenerateWindowPlan(route.WindowPlanInput{
			Zone:     zone,
			Subjects: subjects,
		}).Effects()
	}

	effs = append(effs, effects.LogEffect{
		Phase: "route.applied",
		Fields: map[string]any{
			"zone":     zone.String(),
			"subjects": len(subjects),
		},
	})

	if err := r.executor.Execute(ctx, effs); err != nil {
		return r.fail(ctx, zone, err)
	}
	for _, eff := range effects.Flatten(effs) {
		if _, ok := eff.(effects.LogEffect); ok {
			continue
		}
		result.Steps = append(result.Steps, describeEffect(eff))
	}

	if err := r.selection.ClearSelection(ctx); err != nil {
		r.sink.Record(ctx, "selection.clear_failed", map[string]any{"error": err.Error()})
	}

	result.Outcome = primary.OutcomeRouted
	return nil
}

// subjects reads the dragged entities live from the store. An item drag
// carries the whole selection when the item is part of it.
func (r *Router) subjects(ctx context.Context, active drag.Descriptor) ([]route.Subject, error) {
	switch {
	case active.Role == drag.RoleGroup:
		g, err := r.tabs.GetGroup(ctx, active.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read group %d: %w", active.ID, err)
		}
		return []route.Subject{{
			Kind:      effects.SubjectGroup,
			ID:        g.ID,
			GroupID:   secondary.NoGroup,
			Title:     g.Title,
			Color:     g.Color,
			MemberIDs: g.MemberIDs,
		}}, nil
	case active.Role.IsItem():
		ids := []int{active.ID}
		sel, err := r.selection.GetSelection(ctx)
		if err == nil && len(sel.IDs) > 1 && containsID(sel.IDs, active.ID) {
			ids = sel.IDs
		}
		subjects := make([]route.Subject, 0, len(ids))
		for _, id := range ids {
			item, err := r.tabs.GetItem(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to read item %d: %w", id, err)
			}
			subjects = append(subjects, route.Subject{
				Kind:    effects.SubjectItem,
				ID:      item.ID,
				Pinned:  item.Pinned,
				GroupID: item.GroupID,
			})
		}
		return subjects, nil
	default:
		return nil, nil
	}
}

func (r *Router) fail(ctx context.Context, zone route.Zone, err error) error {
	r.sink.Record(ctx, "route.failed", map[string]any{
		"zone":  zone.String(),
		"error": err.Error(),
	})
	return fmt.Errorf("failed to route to %s: %w", zone, err)
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
