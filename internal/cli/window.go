package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Manage windows",
}

var windowNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Open an empty window and focus it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		w, err := wire.LayoutService().CreateWindow(ctx)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		if err := wire.LayoutService().FocusWindow(ctx, w.ID); err != nil {
			return fmt.Errorf("failed to focus window: %w", err)
		}
		fmt.Printf("✓ Opened window %d\n", w.ID)
		return nil
	},
}

var windowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.LayoutAdapter().Windows(context.Background())
		return err
	},
}

var windowFocusCmd = &cobra.Command{
	Use:   "focus <window-id>",
	Short: "Focus a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid window id %q", args[0])
		}
		if err := wire.LayoutService().FocusWindow(context.Background(), id); err != nil {
			return fmt.Errorf("failed to focus window: %w", err)
		}
		fmt.Printf("✓ Focused window %d\n", id)
		return nil
	},
}

func init() {
	windowCmd.AddCommand(windowNewCmd)
	windowCmd.AddCommand(windowListCmd)
	windowCmd.AddCommand(windowFocusCmd)
}

// WindowCmd returns the window command
func WindowCmd() *cobra.Command {
	return windowCmd
}
