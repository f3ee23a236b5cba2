// Package version reports the build that produced a tabdeck binary.
package version

import (
	"fmt"
	"strings"
)

// Set at build time via -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

// Current returns the build metadata with the commit hash shortened.
func Current() Info {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Info{Version: Version, Commit: commit, BuildTime: BuildTime}
}

// Dev reports whether the binary was built without a release version.
func (i Info) Dev() bool {
	return i.Version == "" || i.Version == "dev"
}

func (i Info) String() string {
	return fmt.Sprintf("tabdeck %s (commit: %s, built: %s)", i.Version, i.Commit, i.BuildTime)
}

// Generator identifies the build in files tabdeck writes, e.g. "tabdeck/1.2.0"
// or "tabdeck/dev+0123456".
func (i Info) Generator() string {
	if i.Dev() {
		return "tabdeck/dev+" + i.Commit
	}
	return "tabdeck/" + strings.TrimPrefix(i.Version, "v")
}

// String describes the running build.
func String() string {
	return Current().String()
}
