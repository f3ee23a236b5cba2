// Package layoutfile reads and writes window layouts as YAML and replays them
// into the ordered-collection store.
package layoutfile

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/example/tabdeck/internal/ports/secondary"
	"github.com/example/tabdeck/internal/version"
)

// Layout is the on-disk document.
type Layout struct {
	Generator  string   `yaml:"generator,omitempty"`
	Workspaces []string `yaml:"workspaces,omitempty"`
	Windows    []Window `yaml:"windows"`
}

// Window is one window's strip: the pinned tabs, then free tabs and groups in order.
type Window struct {
	Focused bool    `yaml:"focused,omitempty"`
	Pinned  []Tab   `yaml:"pinned,omitempty"`
	Items   []Entry `yaml:"items,omitempty"`
}

// Entry holds exactly one of Tab or Group.
type Entry struct {
	Tab   *Tab   `yaml:"tab,omitempty"`
	Group *Group `yaml:"group,omitempty"`
}

// Tab is a single tab.
type Tab struct {
	Title     string `yaml:"title,omitempty"`
	URL       string `yaml:"url"`
	Workspace string `yaml:"workspace,omitempty"`
}

// Group is a tab group with its members in order.
type Group struct {
	Title     string `yaml:"title,omitempty"`
	Color     string `yaml:"color,omitempty"`
	Workspace string `yaml:"workspace,omitempty"`
	Tabs      []Tab  `yaml:"tabs"`
}

// Stores bundles the ports the importer and exporter drive.
type Stores struct {
	Tabs       secondary.TabStore
	Windows    secondary.WindowStore
	Workspaces secondary.WorkspaceStore
}

// Summary counts what an import created.
type Summary struct {
	Windows    int
	Tabs       int
	Groups     int
	Workspaces int
}

// Decode parses a layout document and validates its entries.
func Decode(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Encode writes a layout document.
func Encode(w io.Writer, l *Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return enc.Close()
}

// Validate checks that entries are well formed and workspace names are declared.
func (l *Layout) Validate() error {
	declared := make(map[string]bool, len(l.Workspaces))
	for _, name := range l.Workspaces {
		declared[name] = true
	}
	checkTab := func(where string, t Tab) error {
		if t.URL == "" {
			return fmt.Errorf("%s: tab has no url", where)
		}
		if t.Workspace != "" && !declared[t.Workspace] {
			return fmt.Errorf("%s: unknown workspace %q", where, t.Workspace)
		}
		return nil
	}

	for wi, w := range l.Windows {
		for i, t := range w.Pinned {
			if err := checkTab(fmt.Sprintf("windows[%d].pinned[%d]", wi, i), t); err != nil {
				return err
			}
		}
		for i, e := range w.Items {
			where := fmt.Sprintf("windows[%d].items[%d]", wi, i)
			switch {
			case e.Tab != nil && e.Group != nil:
				return fmt.Errorf("%s: entry has both tab and group", where)
			case e.Tab != nil:
				if err := checkTab(where, *e.Tab); err != nil {
					return err
				}
			case e.Group != nil:
				if len(e.Group.Tabs) == 0 {
					return fmt.Errorf("%s: group has no tabs", where)
				}
				if e.Group.Workspace != "" && !declared[e.Group.Workspace] {
					return fmt.Errorf("%s: unknown workspace %q", where, e.Group.Workspace)
				}
				for j, t := range e.Group.Tabs {
					if err := checkTab(fmt.Sprintf("%s.tabs[%d]", where, j), t); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("%s: empty entry", where)
			}
		}
	}
	return nil
}

// Import creates the layout's workspaces, windows, tabs and groups.
// Workspaces that already exist by name are reused.
func Import(ctx context.Context, s Stores, l *Layout) (*Summary, error) {
	sum := &Summary{}

	existing, err := s.Workspaces.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	wsByName := make(map[string]int, len(existing))
	for _, ws := range existing {
		wsByName[ws.Name] = ws.ID
	}
	for _, name := range l.Workspaces {
		if _, ok := wsByName[name]; ok {
			continue
		}
		ws, err := s.Workspaces.CreateWorkspace(ctx, name)
		if err != nil {
			return nil, err
		}
		wsByName[name] = ws.ID
		sum.Workspaces++
	}

	for _, w := range l.Windows {
		win, err := s.Windows.CreateWindow(ctx)
		if err != nil {
			return nil, err
		}
		sum.Windows++

		addTab := func(t Tab, pinned bool) (int, error) {
			record := &secondary.ItemRecord{WindowID: win.ID, Pinned: pinned, Title: t.Title, URL: t.URL}
			if err := s.Tabs.CreateTab(ctx, record); err != nil {
				return 0, err
			}
			sum.Tabs++
			if t.Workspace != "" {
				if err := s.Workspaces.AssignToWorkspace(ctx, "item", record.ID, wsByName[t.Workspace]); err != nil {
					return 0, err
				}
			}
			return record.ID, nil
		}

		for _, t := range w.Pinned {
			if _, err := addTab(t, true); err != nil {
				return nil, err
			}
		}
		for _, e := range w.Items {
			if e.Tab != nil {
				if _, err := addTab(*e.Tab, false); err != nil {
					return nil, err
				}
				continue
			}
			ids := make([]int, 0, len(e.Group.Tabs))
			for _, t := range e.Group.Tabs {
				id, err := addTab(t, false)
				if err != nil {
					return nil, err
				}
				ids = append(ids, id)
			}
			gid, err := s.Tabs.GroupItems(ctx, ids, 0)
			if err != nil {
				return nil, err
			}
			if err := s.Tabs.UpdateGroup(ctx, gid, e.Group.Title, e.Group.Color); err != nil {
				return nil, err
			}
			if e.Group.Workspace != "" {
				if err := s.Workspaces.AssignToWorkspace(ctx, "group", gid, wsByName[e.Group.Workspace]); err != nil {
					return nil, err
				}
			}
			sum.Groups++
		}

		if w.Focused {
			if err := s.Windows.FocusWindow(ctx, win.ID); err != nil {
				return nil, err
			}
		}
	}
	return sum, nil
}

// Export captures every window from the store.
func Export(ctx context.Context, s Stores) (*Layout, error) {
	workspaces, err := s.Workspaces.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(workspaces))
	l := &Layout{Generator: version.Current().Generator()}
	for _, ws := range workspaces {
		names[ws.ID] = ws.Name
		l.Workspaces = append(l.Workspaces, ws.Name)
	}

	windows, err := s.Windows.ListWindows(ctx)
	if err != nil {
		return nil, err
	}
	for _, win := range windows {
		items, err := s.Tabs.QueryItems(ctx, secondary.ItemFilter{WindowID: win.ID})
		if err != nil {
			return nil, err
		}
		groups, err := s.Tabs.ListGroups(ctx, win.ID)
		if err != nil {
			return nil, err
		}
		groupByID := make(map[int]*secondary.GroupRecord, len(groups))
		for _, g := range groups {
			groupByID[g.ID] = g
		}

		out := Window{Focused: win.Focused}
		var current *Group
		currentID := secondary.NoGroup
		for _, it := range items {
			tab := Tab{Title: it.Title, URL: it.URL, Workspace: names[it.WorkspaceID]}
			switch {
			case it.Pinned:
				out.Pinned = append(out.Pinned, tab)
			case it.GroupID == secondary.NoGroup:
				currentID = secondary.NoGroup
				out.Items = append(out.Items, Entry{Tab: &tab})
			default:
				if it.GroupID != currentID {
					g := groupByID[it.GroupID]
					current = &Group{}
					if g != nil {
						current.Title, current.Color, current.Workspace = g.Title, g.Color, names[g.WorkspaceID]
					}
					currentID = it.GroupID
					out.Items = append(out.Items, Entry{Group: current})
				}
				current.Tabs = append(current.Tabs, tab)
			}
		}
		l.Windows = append(l.Windows, out)
	}
	return l, nil
}
