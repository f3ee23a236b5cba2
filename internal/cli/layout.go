package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/adapters/layoutfile"
	"github.com/example/tabdeck/internal/wire"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Create windows, tabs and groups from a layout file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open layout: %w", err)
		}
		defer f.Close()

		l, err := layoutfile.Decode(f)
		if err != nil {
			return err
		}
		sum, err := layoutfile.Import(context.Background(), wire.Stores(), l)
		if err != nil {
			return fmt.Errorf("failed to import layout: %w", err)
		}
		fmt.Printf("✓ Imported %d window(s), %d tab(s), %d group(s), %d new workspace(s)\n",
			sum.Windows, sum.Tabs, sum.Groups, sum.Workspaces)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file.yaml]",
	Short: "Write every window to a layout file (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layoutfile.Export(context.Background(), wire.Stores())
		if err != nil {
			return fmt.Errorf("failed to export layout: %w", err)
		}
		if len(args) == 0 {
			return layoutfile.Encode(os.Stdout, l)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}
		if err := layoutfile.Encode(f, l); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Printf("✓ Exported %d window(s) to %s\n", len(l.Windows), args[0])
		return nil
	},
}

// LayoutCmds returns the import and export commands
func LayoutCmds() []*cobra.Command {
	return []*cobra.Command{importCmd, exportCmd}
}
