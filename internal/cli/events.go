package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/example/tabdeck/internal/wire"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the gesture audit log, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gesture, _ := cmd.Flags().GetString("gesture")
		limit, _ := cmd.Flags().GetInt("limit")

		events, err := wire.GestureEvents().List(context.Background(), gesture, limit)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No gesture events recorded.")
			return nil
		}

		tbl := uitable.New()
		tbl.MaxColWidth = 80
		tbl.AddRow("TIME", "GESTURE", "PHASE", "DATA")
		for _, e := range events {
			phase := e.Phase
			switch {
			case strings.HasSuffix(phase, "failed"), strings.HasSuffix(phase, ".resync"):
				phase = color.New(color.FgRed).Sprint(phase)
			case phase == "gesture.applied", phase == "route.applied":
				phase = color.New(color.FgGreen).Sprint(phase)
			}
			tbl.AddRow(e.CreatedAt, shortGesture(e.GestureID), phase, e.Data)
		}
		fmt.Fprintln(os.Stdout, tbl)
		return nil
	},
}

func shortGesture(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	eventsCmd.Flags().StringP("gesture", "g", "", "Only events of this gesture id")
	eventsCmd.Flags().IntP("limit", "n", 50, "Maximum number of events (0 for all)")
}

// EventsCmd returns the events command
func EventsCmd() *cobra.Command {
	return eventsCmd
}
