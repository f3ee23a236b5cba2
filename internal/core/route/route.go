// Package route contains the pure logic for drops onto cross-container zones:
// workspaces and windows. Zone drops bypass index arithmetic entirely.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone kinds.
const (
	ZoneWorkspace        = "workspace"
	ZoneWorkspaceGeneral = "workspace_general"
	ZoneWindow           = "window"
	ZoneWindowNew        = "window_new"
	ZoneWindowGap        = "window_gap"
)

// Zone is a parsed cross-container drop target.
type Zone struct {
	Kind string
	ID   int
}

// String returns the wire form of the zone.
func (z Zone) String() string {
	switch z.Kind {
	case ZoneWorkspaceGeneral:
		return "workspace:general"
	case ZoneWindowNew:
		return "window:new"
	case ZoneWindowGap:
		return "window-gap"
	case ZoneWorkspace, ZoneWindow:
		return fmt.Sprintf("%s:%d", z.Kind, z.ID)
	}
	return "unknown"
}

// IsWorkspace reports whether the zone targets a workspace.
func (z Zone) IsWorkspace() bool {
	return z.Kind == ZoneWorkspace || z.Kind == ZoneWorkspaceGeneral
}

// IsWindow reports whether the zone targets a window.
func (z Zone) IsWindow() bool {
	return z.Kind == ZoneWindow || z.Kind == ZoneWindowNew
}

// ParseZone recognises zone identifiers. ok is false for anything that is not
// a zone, which the caller then parses as a drag descriptor. A zone prefix with
// a bad id is returned as an error.
func ParseZone(s string) (zone Zone, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "window-gap" {
		return Zone{Kind: ZoneWindowGap}, true, nil
	}
	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		return Zone{}, false, nil
	}
	switch prefix {
	case "workspace":
		if rest == "general" {
			return Zone{Kind: ZoneWorkspaceGeneral}, true, nil
		}
		id, err := parseZoneID(s, rest)
		return Zone{Kind: ZoneWorkspace, ID: id}, true, err
	case "window":
		if rest == "new" {
			return Zone{Kind: ZoneWindowNew}, true, nil
		}
		id, err := parseZoneID(s, rest)
		return Zone{Kind: ZoneWindow, ID: id}, true, err
	}
	return Zone{}, false, nil
}

func parseZoneID(s, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid zone identifier %q", s)
	}
	return id, nil
}
