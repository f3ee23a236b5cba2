package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/ports/primary"
	"github.com/example/tabdeck/internal/wire"
)

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a tab at the end of a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		windowID, err := resolveWindow(ctx, cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		pinned, _ := cmd.Flags().GetBool("pinned")

		tab, err := wire.LayoutService().OpenTab(ctx, primary.OpenTabRequest{
			WindowID: windowID,
			Title:    title,
			URL:      args[0],
			Pinned:   pinned,
		})
		if err != nil {
			return fmt.Errorf("failed to open tab: %w", err)
		}
		fmt.Printf("✓ Opened tab %d at index %d in window %d\n", tab.ID, tab.Index, tab.WindowID)
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <tab-id>",
	Short: "Pin a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPinned(args[0], true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <tab-id>",
	Short: "Unpin a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPinned(args[0], false)
	},
}

func setPinned(arg string, pinned bool) error {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return err
	}
	if err := wire.LayoutService().SetPinned(context.Background(), ids[0], pinned); err != nil {
		return fmt.Errorf("failed to update tab: %w", err)
	}
	verb := "Unpinned"
	if pinned {
		verb = "Pinned"
	}
	fmt.Printf("✓ %s tab %d\n", verb, ids[0])
	return nil
}

var groupCmd = &cobra.Command{
	Use:   "group <tab-id>...",
	Short: "Group tabs into a new group",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		color, _ := cmd.Flags().GetString("color")

		gid, err := wire.LayoutService().CreateGroup(context.Background(), primary.CreateGroupRequest{
			TabIDs: ids,
			Title:  title,
			Color:  color,
		})
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		fmt.Printf("✓ Created group %d with %d tab(s)\n", gid, len(ids))
		return nil
	},
}

var collapseCmd = &cobra.Command{
	Use:   "collapse <group-id>",
	Short: "Collapse a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCollapsed(args[0], true)
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand <group-id>",
	Short: "Expand a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCollapsed(args[0], false)
	},
}

func setCollapsed(arg string, collapsed bool) error {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return err
	}
	if err := wire.LayoutService().SetCollapsed(context.Background(), ids[0], collapsed); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	verb := "Expanded"
	if collapsed {
		verb = "Collapsed"
	}
	fmt.Printf("✓ %s group %d\n", verb, ids[0])
	return nil
}

func init() {
	addWindowFlag(openCmd)
	openCmd.Flags().StringP("title", "t", "", "Tab title")
	openCmd.Flags().BoolP("pinned", "p", false, "Open as a pinned tab")

	groupCmd.Flags().StringP("title", "t", "", "Group title")
	groupCmd.Flags().StringP("color", "c", "grey", "Group colour")
}

// TabCmds returns the tab editing commands
func TabCmds() []*cobra.Command {
	return []*cobra.Command{openCmd, pinCmd, unpinCmd, groupCmd, collapseCmd, expandCmd}
}
