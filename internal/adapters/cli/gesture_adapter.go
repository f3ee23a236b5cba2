package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/tabdeck/internal/ports/primary"
)

// GestureAdapter runs single drag gestures from the command line.
type GestureAdapter struct {
	gestures primary.GestureService
	layout   primary.LayoutService
	out      io.Writer
}

// NewGestureAdapter creates a new GestureAdapter.
func NewGestureAdapter(gestures primary.GestureService, layout primary.LayoutService, out io.Writer) *GestureAdapter {
	return &GestureAdapter{
		gestures: gestures,
		layout:   layout,
		out:      out,
	}
}

// Drag snapshots a window and drops activeID onto overID (empty for no target).
func (a *GestureAdapter) Drag(ctx context.Context, windowID int, activeID, overID string) (*primary.GestureResult, error) {
	layout, err := a.layout.Snapshot(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to read window %d: %w", windowID, err)
	}

	req := layout.Request(activeID, overID)
	req.Callbacks.RequestReload = func() {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("! store changed underneath the gesture; reload the layout"))
	}

	result, err := a.gestures.HandleGestureEnd(ctx, req)
	if err != nil {
		fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgRed).Sprint("✗"), err)
		return nil, err
	}

	fmt.Fprintf(a.out, "%s %s", outcomeGlyph(result.Outcome), result.Outcome)
	if result.Reason != "" {
		fmt.Fprintf(a.out, " (%s)", result.Reason)
	}
	fmt.Fprintln(a.out)
	for _, step := range result.Steps {
		fmt.Fprintf(a.out, "  %s\n", step)
	}
	if result.Failure != nil {
		fmt.Fprintf(a.out, "  %s\n", color.New(color.FgRed).Sprint(result.Failure))
	}
	return result, nil
}

func outcomeGlyph(outcome string) string {
	switch outcome {
	case primary.OutcomeApplied, primary.OutcomeRouted:
		return color.New(color.FgGreen).Sprint("✓")
	case primary.OutcomeParseFailed, primary.OutcomeResynced:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgYellow).Sprint("·")
	}
}
