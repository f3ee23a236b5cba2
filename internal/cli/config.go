package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialise configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Printf("Config file:       %s\n", path)
		fmt.Printf("Database:          %s\n", cfg.Database.Path)
		fmt.Printf("Selection dir:     %s\n", cfg.Selection.Dir)
		fmt.Printf("Log:               %s (%s), audit=%t\n", cfg.Log.Level, cfg.Log.Format, cfg.Log.Audit)
		fmt.Printf("Recently moved:    %s\n", cfg.RecentlyMoved())
		fmt.Printf("Reorder debounce:  %s\n", cfg.ReorderDebounce())
		fmt.Printf("General workspace: %s\n", cfg.Workspace.GeneralName)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		path, _ := config.Path()
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	return configCmd
}
