package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/cli"
	"github.com/example/tabdeck/internal/version"
	"github.com/example/tabdeck/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tabdeck",
		Short:   "tabdeck - tab manager with drag-reorder gestures",
		Version: version.String(),
		Long: `tabdeck keeps browser-style windows of pinned tabs, free tabs and tab groups,
and applies drag gestures to them: reorder, regroup, multi-selection moves and
drops onto workspaces or other windows.`,
		SilenceUsage: true,
	}

	// Layout and gestures
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.DragCmd())
	rootCmd.AddCommand(cli.SelectCmd())
	rootCmd.AddCommand(cli.TabCmds()...)
	rootCmd.AddCommand(cli.WorkspaceCmd())
	rootCmd.AddCommand(cli.WindowCmd())
	rootCmd.AddCommand(cli.LayoutCmds()...)
	rootCmd.AddCommand(cli.UICmd())

	// Diagnostics
	rootCmd.AddCommand(cli.EventsCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	err := rootCmd.Execute()
	wire.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
