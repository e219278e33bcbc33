// Package version holds the build information stamped in at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/arthur-debert/prismatic/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build information of the running binary
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Get returns the stamped build information. Binaries built with
// "go install" carry no ldflags; their module version and VCS revision
// are used instead.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String renders the information the way the version command prints it
func (i Info) String() string {
	return fmt.Sprintf("prismatic version %s\n  commit: %s\n  built:  %s\n", i.Version, i.Commit, i.Date)
}
