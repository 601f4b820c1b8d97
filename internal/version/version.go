// Package version holds build metadata for chatbox-mcp-sync.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release version, set at build time via ldflags.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// BuildTime is when the binary was built.
	BuildTime = "unknown"
)

// Info returns a single-line human-readable version string.
func Info() string {
	commit := Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("chatbox-mcp-sync %s (%s) - %s %s/%s",
		Version, commit, BuildTime, runtime.GOOS, runtime.GOARCH)
}
