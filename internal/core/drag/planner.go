package drag

import "github.com/example/tabdeck/internal/core/effects"

// Plan kinds.
const (
	PlanApply = "apply"
	PlanNoOp  = "noop"
	PlanSkip  = "skip"
)

// Gesture is a fully resolved drag: normalised descriptors, the entities they
// refer to, the movement direction and the snapshot they were resolved against.
type Gesture struct {
	Active       Descriptor
	Over         Descriptor
	ActiveEntity Entity
	OverEntity   Entity
	Dir          Direction
	Layout       Layout
}

// DropPlanInput contains the parsed descriptors and the pre-fetched snapshot.
type DropPlanInput struct {
	Active Descriptor
	Over   Descriptor // zero when the drop had no target
	Layout Layout
}

// GroupFallback asks the shell to place a group right after a neighbouring
// group, using the neighbour's live range (see GroupFallbackTarget).
type GroupFallback struct {
	ActiveGroupID   int
	NeighborGroupID int
	ActiveIndex     int
	ActiveSize      int
}

// DropPlan is the decision for one gesture.
type DropPlan struct {
	Kind   string
	Reason string

	// Active and Over are the descriptors after redirection and normalisation.
	Active Descriptor
	Over   Descriptor
	Up     bool

	Steps         []effects.Effect
	GroupFallback *GroupFallback
}

// Effects returns the mutation steps in execution order.
func (p DropPlan) Effects() []effects.Effect {
	return p.Steps
}

// NeedsFallback reports whether the final group move still has to be computed from live state.
func (p DropPlan) NeedsFallback() bool {
	return p.GroupFallback != nil
}

// GenerateDropPlan decides a gesture: redirect, resolve, direction, no-op check, dispatch.
// This is a pure function - all input data must be pre-fetched.
func GenerateDropPlan(input DropPlanInput) DropPlan {
	l := input.Layout
	if input.Over.IsZero() {
		return DropPlan{Kind: PlanNoOp, Reason: "no drop target", Active: input.Active}
	}
	if input.Active.Role.IsSentinel() {
		return DropPlan{Kind: PlanSkip, Reason: "separators cannot be dragged", Active: input.Active, Over: input.Over}
	}

	over, ok := RedirectEndSeparator(input.Active, input.Over, l)
	if !ok {
		return DropPlan{Kind: PlanNoOp, Reason: "nothing to append after", Active: input.Active, Over: input.Over}
	}

	ae := l.Resolve(input.Active)
	if !ae.Found() {
		return DropPlan{Kind: PlanSkip, Reason: "active " + input.Active.String() + " not in layout", Active: input.Active, Over: over}
	}
	oe := l.Resolve(over)
	if !oe.Found() && over.Role != RolePinnedSeparator && over.Role != RoleEndSeparator {
		return DropPlan{Kind: PlanSkip, Reason: "target " + over.String() + " not in layout", Active: input.Active, Over: over}
	}

	g := Gesture{
		Active:       Normalize(input.Active, ae),
		Over:         Normalize(over, oe),
		ActiveEntity: ae,
		OverEntity:   oe,
		Layout:       l,
	}
	g.Dir = ComputeDirection(ActiveIndex(ae), OverIndex(g.Over, oe, l))

	base := DropPlan{Active: g.Active, Over: g.Over, Up: g.Dir.Up}

	if r := CheckNoOp(NoOpContext{Gesture: g}); !r.Allowed {
		base.Kind, base.Reason = PlanNoOp, r.Reason
		return base
	}

	handler, ok := dropHandlers[g.Over.Role]
	if !ok {
		base.Kind, base.Reason = PlanSkip, "no handler for "+g.Over.Role.String()
		return base
	}
	plan := handler(g)
	plan.Active, plan.Over, plan.Up = base.Active, base.Over, base.Up
	return plan
}
