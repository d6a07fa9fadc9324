// Package version exposes build metadata stamped in through -ldflags.
package version

import "runtime"

// Set at build time, e.g. -ldflags "-X github.com/pandeptwidyaop/cnc-monitor/internal/version.Version=v1.2.0"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// Info returns the build metadata of the running binary.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
}

// String formats the build metadata for the version subcommand.
func (b BuildInfo) String() string {
	return "cnc-monitor " + b.Version + " (commit " + b.GitCommit + ", built " + b.BuildTime + ", " + b.GoVersion + ")"
}
