package route

import (
	"github.com/example/tabdeck/internal/core/effects"
	"github.com/example/tabdeck/internal/core/tabstrip"
)

// Subject is an item or group being routed, as seen at gesture start.
type Subject struct {
	Kind    string // effects.SubjectItem or effects.SubjectGroup
	ID      int
	Pinned  bool
	GroupID int // owning group of an item, tabstrip.NoGroup when free

	// Group subjects only.
	Title     string
	Color     string
	MemberIDs []int
}

// Grouped reports whether an item subject still holds group membership.
func (s Subject) Grouped() bool {
	return s.Kind == effects.SubjectItem && s.GroupID != tabstrip.NoGroup
}

// WorkspacePlanInput contains pre-fetched data for a workspace-zone drop.
type WorkspacePlanInput struct {
	Zone     Zone
	Subjects []Subject
	WindowID int
}

// WorkspacePlan represents the planned effects for a workspace-zone drop.
type WorkspacePlan struct {
	Ungroups    []effects.UngroupItemEffect
	Assignments []effects.AssignWorkspaceEffect
	Reorder     effects.ReorderByWorkspaceEffect
}

// Effects returns all effects as a flat slice for execution.
func (p WorkspacePlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.Ungroups)+len(p.Assignments)+1)
	for _, e := range p.Ungroups {
		result = append(result, e)
	}
	for _, e := range p.Assignments {
		result = append(result, e)
	}
	return append(result, p.Reorder)
}

// GenerateWorkspacePlan assigns every subject to the zone's workspace, or clears
// the assignment for the general zone. Items keeping a group are ungrouped
// before they are assigned; groups are assigned whole.
// This is a pure function - all input data must be pre-fetched.
func GenerateWorkspacePlan(input WorkspacePlanInput) WorkspacePlan {
	plan := WorkspacePlan{Reorder: effects.ReorderByWorkspaceEffect{WindowID: input.WindowID}}
	workspaceID := input.Zone.ID
	if input.Zone.Kind == ZoneWorkspaceGeneral {
		workspaceID = 0
	}
	for _, s := range input.Subjects {
		if workspaceID != 0 && s.Grouped() {
			plan.Ungroups = append(plan.Ungroups, effects.UngroupItemEffect{ItemID: s.ID})
		}
		plan.Assignments = append(plan.Assignments, effects.AssignWorkspaceEffect{
			Subject:     s.Kind,
			ID:          s.ID,
			WorkspaceID: workspaceID,
		})
	}
	return plan
}

// WindowPlanInput contains pre-fetched data for a window-zone drop.
type WindowPlanInput struct {
	Zone     Zone
	Subjects []Subject
}

// WindowPlan represents the planned effects for a window-zone drop.
type WindowPlan struct {
	Steps []effects.Effect
}

// Effects returns all effects as a flat slice for execution.
func (p WindowPlan) Effects() []effects.Effect {
	return p.Steps
}

// GenerateWindowPlan relocates the subjects to the zone's window and focuses it.
// A group moves whole to an existing window. For a new window it is re-created
// there with the same title and colour. Items keep their pinned flag.
// This is a pure function - all input data must be pre-fetched.
func GenerateWindowPlan(input WindowPlanInput) WindowPlan {
	var plan WindowPlan
	windowID := input.Zone.ID
	if input.Zone.Kind == ZoneWindowNew {
		windowID = effects.NewWindow
		plan.Steps = append(plan.Steps, effects.CreateWindowEffect{})
	}

	if len(input.Subjects) == 1 && input.Subjects[0].Kind == effects.SubjectGroup {
		g := input.Subjects[0]
		if windowID != effects.NewWindow {
			plan.Steps = append(plan.Steps, effects.MoveGroupToWindowEffect{GroupID: g.ID, WindowID: windowID})
		} else {
			plan.Steps = append(plan.Steps, recreateGroup(g, windowID))
		}
	} else {
		for _, s := range input.Subjects {
			if s.Kind != effects.SubjectItem {
				continue
			}
			plan.Steps = append(plan.Steps, effects.MoveItemToWindowEffect{ItemID: s.ID, WindowID: windowID})
			if s.Pinned {
				plan.Steps = append(plan.Steps, effects.SetPinnedEffect{ItemID: s.ID, Pinned: true})
			}
		}
	}

	plan.Steps = append(plan.Steps, effects.FocusWindowEffect{WindowID: windowID})
	return plan
}

// recreateGroup rebuilds a group in another window: members leave the group,
// move one by one, then are regrouped with the old title and colour.
func recreateGroup(g Subject, windowID int) effects.CompositeEffect {
	var c effects.CompositeEffect
	for _, id := range g.MemberIDs {
		c.Effects = append(c.Effects, effects.UngroupItemEffect{ItemID: id})
	}
	for _, id := range g.MemberIDs {
		c.Effects = append(c.Effects, effects.MoveItemToWindowEffect{ItemID: id, WindowID: windowID})
	}
	c.Effects = append(c.Effects,
		effects.GroupItemsEffect{ItemIDs: g.MemberIDs, GroupID: 0},
		effects.UpdateGroupEffect{GroupID: effects.NewGroup, Title: g.Title, Color: g.Color},
	)
	return c
}
