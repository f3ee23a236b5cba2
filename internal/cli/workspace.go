package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspaces",
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a workspace at the end of the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := wire.LayoutService().CreateWorkspace(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}
		fmt.Printf("✓ Created workspace %d: %s\n", ws.ID, ws.Name)
		return nil
	},
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.LayoutAdapter().Workspaces(context.Background())
		return err
	},
}

var workspaceSendCmd = &cobra.Command{
	Use:   "send <active> <name>",
	Short: "Drop an element onto a workspace by name",
	Long: `Drop <active> onto the named workspace zone, exactly as a drag onto the
workspace bar would. The general workspace name clears assignments instead.`,
	Example: `  tabdeck workspace send tab:12 research
  tabdeck workspace send group:3 General`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		windowID, err := resolveWindow(ctx, cmd)
		if err != nil {
			return err
		}

		zone := "workspace:general"
		if args[1] != wire.Config().Workspace.GeneralName {
			workspaces, err := wire.LayoutService().ListWorkspaces(ctx)
			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}
			ws, err := findWorkspace(workspaces, args[1])
			if err != nil {
				return err
			}
			zone = "workspace:" + strconv.Itoa(ws.ID)
		}

		_, err = wire.GestureAdapter().Drag(ctx, windowID, args[0], zone)
		return err
	},
}

func init() {
	addWindowFlag(workspaceSendCmd)

	workspaceCmd.AddCommand(workspaceAddCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceSendCmd)
}

// WorkspaceCmd returns the workspace command
func WorkspaceCmd() *cobra.Command {
	return workspaceCmd
}
