package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var selectCmd = &cobra.Command{
	Use:   "select <tab-id>...",
	Short: "Replace the multi-selection",
	Long:  "Select tabs that move together when one of them is dragged. The last id becomes the selection anchor hint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		clearAll, _ := cmd.Flags().GetBool("clear")
		if clearAll {
			if err := wire.LayoutService().ClearSelection(ctx); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
			fmt.Println("✓ Selection cleared")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("no tab ids given (use --clear to empty the selection)")
		}

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if err := wire.LayoutService().Select(ctx, ids); err != nil {
			return fmt.Errorf("failed to select: %w", err)
		}
		fmt.Printf("✓ Selected %d tab(s)\n", len(ids))
		return nil
	},
}

var selectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.LayoutAdapter().Selection(context.Background())
		return err
	},
}

func init() {
	selectCmd.Flags().Bool("clear", false, "Empty the selection")
	selectCmd.AddCommand(selectShowCmd)
}

// SelectCmd returns the select command
func SelectCmd() *cobra.Command {
	return selectCmd
}
