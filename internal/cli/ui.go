package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/tui"
	"github.com/example/tabdeck/internal/wire"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive tab strip",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		windowID, err := resolveWindow(ctx, cmd)
		if err != nil {
			return err
		}
		cfg := wire.Config()

		model := tui.New(tui.Options{
			Layout:        wire.LayoutService(),
			Gestures:      wire.GestureService(),
			WindowID:      windowID,
			RecentlyMoved: cfg.RecentlyMoved(),
		})
		p := tea.NewProgram(model, tea.WithAltScreen())

		changes, err := tui.Watch(ctx, cfg.Database.Path, cfg.Selection.Dir)
		if err != nil {
			return fmt.Errorf("failed to watch store: %w", err)
		}
		go func() {
			for range changes {
				p.Send(tui.ExternalChangeMsg{})
			}
		}()

		_, err = p.Run()
		return err
	},
}

func init() {
	addWindowFlag(uiCmd)
}

// UICmd returns the ui command
func UICmd() *cobra.Command {
	return uiCmd
}
