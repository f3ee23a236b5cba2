// Package cli contains thin output adapters that translate CLI operations into
// primary service calls.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/example/tabdeck/internal/ports/primary"
)

// LayoutAdapter translates CLI layout operations to LayoutService calls.
type LayoutAdapter struct {
	service primary.LayoutService
	out     io.Writer
}

// NewLayoutAdapter creates a new LayoutAdapter with the given service.
func NewLayoutAdapter(service primary.LayoutService, out io.Writer) *LayoutAdapter {
	return &LayoutAdapter{
		service: service,
		out:     out,
	}
}

// List prints a window's strip, one row per tab plus a header row per group.
// Members of collapsed groups are hidden.
func (a *LayoutAdapter) List(ctx context.Context, windowID int) (*primary.WindowLayout, error) {
	layout, err := a.service.Snapshot(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to read window %d: %w", windowID, err)
	}

	if len(layout.Tabs) == 0 {
		fmt.Fprintf(a.out, "Window %d has no tabs.\n", windowID)
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Open one:")
		fmt.Fprintln(a.out, "  tabdeck open https://example.com")
		return layout, nil
	}

	selected, err := a.service.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	isSelected := make(map[int]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow("IDX", "DRAG ID", "TITLE", "WORKSPACE", "URL")

	lastGroup := -1
	for _, tab := range layout.Tabs {
		if tab.GroupID >= 0 && tab.GroupID != lastGroup {
			lastGroup = tab.GroupID
			info := layout.GroupInfo[tab.GroupID]
			marker := "▾"
			if layout.Collapsed[tab.GroupID] {
				marker = "▸"
			}
			title, ws := "", ""
			if info != nil {
				title = groupColor(info.Color).Sprintf("%s %s", marker, info.Title)
				ws = layout.Workspaces[info.WorkspaceID]
			}
			tbl.AddRow("", "group:"+strconv.Itoa(tab.GroupID), title, ws, "")
		}
		if tab.GroupID >= 0 && layout.Collapsed[tab.GroupID] {
			continue
		}
		if tab.GroupID < 0 {
			lastGroup = -1
		}

		title := tab.Title
		if isSelected[tab.ID] {
			title = color.New(color.FgHiMagenta).Sprint("● ") + title
		}
		tbl.AddRow(tab.Index, dragID(tab), title, layout.Workspaces[tab.WorkspaceID], tab.URL)
	}

	fmt.Fprintln(a.out, tbl)
	return layout, nil
}

// Windows prints all windows.
func (a *LayoutAdapter) Windows(ctx context.Context) ([]*primary.Window, error) {
	windows, err := a.service.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) == 0 {
		fmt.Fprintln(a.out, "No windows found.")
		return windows, nil
	}

	tbl := uitable.New()
	tbl.AddRow("ID", "TABS", "")
	for _, w := range windows {
		focused := ""
		if w.Focused {
			focused = color.New(color.FgHiMagenta).Sprint("[focused]")
		}
		tbl.AddRow(w.ID, w.TabCount, focused)
	}
	fmt.Fprintln(a.out, tbl)
	return windows, nil
}

// Workspaces prints all workspaces with their drop zone identifiers.
func (a *LayoutAdapter) Workspaces(ctx context.Context) ([]*primary.Workspace, error) {
	workspaces, err := a.service.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	if len(workspaces) == 0 {
		fmt.Fprintln(a.out, "No workspaces found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first workspace:")
		fmt.Fprintln(a.out, "  tabdeck workspace add work")
		return workspaces, nil
	}

	tbl := uitable.New()
	tbl.AddRow("ID", "NAME", "ZONE")
	for _, ws := range workspaces {
		tbl.AddRow(ws.ID, ws.Name, "workspace:"+strconv.Itoa(ws.ID))
	}
	fmt.Fprintln(a.out, tbl)
	return workspaces, nil
}

// Selection prints the selection set.
func (a *LayoutAdapter) Selection(ctx context.Context) ([]int, error) {
	ids, err := a.service.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return ids, nil
	}
	fmt.Fprintf(a.out, "Selected: %v\n", ids)
	return ids, nil
}

// dragID returns the identifier a host would emit when the tab is dragged.
func dragID(tab *primary.Tab) string {
	switch {
	case tab.Pinned:
		return "pinned:" + strconv.Itoa(tab.ID)
	case tab.GroupID >= 0:
		return "grouped:" + strconv.Itoa(tab.ID)
	default:
		return "tab:" + strconv.Itoa(tab.ID)
	}
}

func groupColor(name string) *color.Color {
	switch name {
	case "blue":
		return color.New(color.FgBlue, color.Bold)
	case "red":
		return color.New(color.FgRed, color.Bold)
	case "yellow":
		return color.New(color.FgYellow, color.Bold)
	case "green":
		return color.New(color.FgGreen, color.Bold)
	case "pink", "purple":
		return color.New(color.FgMagenta, color.Bold)
	case "cyan":
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.Bold)
	}
}
