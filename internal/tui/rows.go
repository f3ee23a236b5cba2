package tui

import (
	"fmt"
	"strconv"

	"github.com/example/tabdeck/internal/ports/primary"
)

type rowKind int

const (
	rowPinnedSeparator rowKind = iota
	rowPinned
	rowTab
	rowGroup
	rowGrouped
	rowGroupSeparator
	rowEndSeparator
	rowZone
)

// Row is one line of the strip view. ID is the identifier a drag emits for it.
type Row struct {
	ID      string
	Kind    rowKind
	TabID   int
	GroupID int
	Label   string
	Color   string
}

// Draggable reports whether the row can be picked up.
func (r Row) Draggable() bool {
	switch r.Kind {
	case rowPinned, rowTab, rowGroup, rowGrouped:
		return true
	}
	return false
}

// IsTab reports whether the row is a single tab.
func (r Row) IsTab() bool {
	return r.Kind == rowPinned || r.Kind == rowTab || r.Kind == rowGrouped
}

// buildRows lays a window out as drag sources and drop targets, followed by
// the workspace and window zones. Members of collapsed groups are left out.
func buildRows(layout *primary.WindowLayout, workspaces []*primary.Workspace, windows []*primary.Window) []Row {
	var rows []Row
	if layout == nil {
		return rows
	}

	rows = append(rows, Row{ID: "pinned-separator:1", Kind: rowPinnedSeparator, GroupID: -1, Label: "top of pinned"})
	for _, tab := range layout.Tabs {
		if tab.Pinned {
			rows = append(rows, tabRow(tab, rowPinned, "pinned:"))
		}
	}
	rows = append(rows, Row{ID: "pinned-separator:2", Kind: rowPinnedSeparator, GroupID: -1, Label: "end of pinned"})

	open := -1
	closeGroup := func() {
		if open < 0 {
			return
		}
		title := ""
		if info := layout.GroupInfo[open]; info != nil {
			title = info.Title
		}
		rows = append(rows, Row{
			ID:      "group-separator:" + strconv.Itoa(open),
			Kind:    rowGroupSeparator,
			GroupID: open,
			Label:   fmt.Sprintf("after %s", groupTitle(title, open)),
		})
		open = -1
	}

	for _, tab := range layout.Tabs {
		if tab.Pinned {
			continue
		}
		if tab.GroupID != open {
			closeGroup()
		}
		if tab.GroupID < 0 {
			rows = append(rows, tabRow(tab, rowTab, "tab:"))
			continue
		}
		if open != tab.GroupID {
			open = tab.GroupID
			row := Row{ID: "group:" + strconv.Itoa(open), Kind: rowGroup, TabID: -1, GroupID: open}
			if info := layout.GroupInfo[open]; info != nil {
				row.Label = groupTitle(info.Title, open)
				row.Color = info.Color
			} else {
				row.Label = groupTitle("", open)
			}
			rows = append(rows, row)
		}
		if !layout.Collapsed[tab.GroupID] {
			rows = append(rows, tabRow(tab, rowGrouped, "grouped:"))
		}
	}
	closeGroup()
	rows = append(rows, Row{ID: "end-separator:0", Kind: rowEndSeparator, GroupID: -1, Label: "end of strip"})

	rows = append(rows, Row{ID: "workspace:general", Kind: rowZone, GroupID: -1, Label: "workspace: general"})
	for _, ws := range workspaces {
		rows = append(rows, Row{
			ID:      "workspace:" + strconv.Itoa(ws.ID),
			Kind:    rowZone,
			GroupID: -1,
			Label:   "workspace: " + ws.Name,
		})
	}
	for _, w := range windows {
		if w.ID == layout.WindowID {
			continue
		}
		rows = append(rows, Row{
			ID:      "window:" + strconv.Itoa(w.ID),
			Kind:    rowZone,
			GroupID: -1,
			Label:   fmt.Sprintf("window %d (%d tabs)", w.ID, w.TabCount),
		})
	}
	rows = append(rows, Row{ID: "window:new", Kind: rowZone, GroupID: -1, Label: "new window"})
	return rows
}

func tabRow(tab *primary.Tab, kind rowKind, prefix string) Row {
	label := tab.Title
	if label == "" {
		label = tab.URL
	}
	return Row{
		ID:      prefix + strconv.Itoa(tab.ID),
		Kind:    kind,
		TabID:   tab.ID,
		GroupID: tab.GroupID,
		Label:   label,
	}
}

func groupTitle(title string, id int) string {
	if title == "" {
		return fmt.Sprintf("group %d", id)
	}
	return title
}
