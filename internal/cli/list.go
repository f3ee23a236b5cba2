package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show a window's tabs and groups with their drag identifiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		windowID, err := resolveWindow(ctx, cmd)
		if err != nil {
			return err
		}
		_, err = wire.LayoutAdapter().List(ctx, windowID)
		return err
	},
}

func init() {
	addWindowFlag(listCmd)
}

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	return listCmd
}
