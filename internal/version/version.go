// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/optionquotes/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/optionquotes/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	         ./cmd/quoteloader
package version

import "runtime/debug"

// Build-time variables (set via ldflags)
var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// Commit is the git commit hash (short form). When unset, the VCS
	// revision recorded by the Go toolchain is used.
	Commit = "unknown"
)

// Revision returns Commit, falling back to the vcs.revision build setting.
func Revision() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return Commit
}

// String returns a formatted version string.
func String() string {
	return Version + " (" + Revision() + ")"
}
