package version

import (
	"fmt"
	"runtime"
)

// These variables are intended to be set at build time via -ldflags.
// Defaults are useful for local development builds.
var (
	// Version is the semantic version of the build, e.g. v0.1.0. Defaults to "dev".
	Version = "dev"
	// Commit is the short git commit hash. Defaults to ""
	Commit = ""
	// Go is the Go toolchain version used for the build.
	Go = runtime.Version()
)

// Info returns a map of version/build metadata suitable for logging.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"go":      Go,
	}
}

// String renders the build metadata on one line.
func String() string {
	if Commit == "" {
		return fmt.Sprintf("%s (%s)", Version, Go)
	}
	return fmt.Sprintf("%s-%s (%s)", Version, Commit, Go)
}
