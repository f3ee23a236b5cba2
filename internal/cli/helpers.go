// Package cli contains the cobra commands of the tabdeck CLI.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/wire"
)

// resolveWindow returns the --window flag, or the focused window when unset.
func resolveWindow(ctx context.Context, cmd *cobra.Command) (int, error) {
	windowID, _ := cmd.Flags().GetInt("window")
	if windowID != 0 {
		return windowID, nil
	}
	w, err := wire.LayoutService().FocusedWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get focused window: %w", err)
	}
	return w.ID, nil
}

func addWindowFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("window", "w", 0, "Window ID (default: focused window)")
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid tab id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// findWorkspace resolves a workspace by exact name. On a miss it suggests the
// closest existing name.
func findWorkspace(workspaces []*primary.Workspace, name string) (*primary.Workspace, error) {
	var (
		best     *primary.Workspace
		bestDist = -1
	)
	for _, ws := range workspaces {
		if ws.Name == name {
			return ws, nil
		}
		d := levenshtein.ComputeDistance(name, ws.Name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = ws, d
		}
	}
	if best != nil && bestDist <= maxSuggestDistance(name) {
		return nil, fmt.Errorf("workspace %q not found (did you mean %q?)", name, best.Name)
	}
	return nil, fmt.Errorf("workspace %q not found", name)
}

func maxSuggestDistance(name string) int {
	if n := len(name) / 2; n > 2 {
		return n
	}
	return 2
}
