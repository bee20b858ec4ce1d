// Package contracts carries the types shared between the service, the CLI
// and external consumers, including build identity.
package contracts

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the application.
const Version = "0.1.0"

var (
	// BuildTime is set during build using ldflags.
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags.
	GitCommit = "unknown"
)

// VersionInfo contains detailed build identity, served by the version
// endpoint and printed by the CLI.
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// GetVersionString returns a formatted one-line version string.
func GetVersionString() string {
	return fmt.Sprintf("retailpulse v%s (commit %s)", Version, GitCommit)
}
