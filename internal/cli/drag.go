package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var dragCmd = &cobra.Command{
	Use:   "drag <active> [over]",
	Short: "Run one drag gesture",
	Long: `Drop the dragged element <active> onto [over].

Identifiers use the host wire form, e.g. tab:12, grouped:7, pinned:3, group:4,
group-separator:4, pinned-separator:1, end-separator:0. Cross-container zones are
workspace:<id>, workspace:general, window:<id> and window:new.
Omit [over] to simulate a drop outside any target.`,
	Example: `  tabdeck drag tab:12 tab:4
  tabdeck drag group:3 end-separator:0
  tabdeck drag tab:12 window:new`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		windowID, err := resolveWindow(ctx, cmd)
		if err != nil {
			return err
		}
		over := ""
		if len(args) == 2 {
			over = args[1]
		}
		_, err = wire.GestureAdapter().Drag(ctx, windowID, args[0], over)
		return err
	},
}

func init() {
	addWindowFlag(dragCmd)
}

// DragCmd returns the drag command
func DragCmd() *cobra.Command {
	return dragCmd
}
