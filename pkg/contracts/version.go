package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the loaders
	Version = "0.1.0"

	// DataFormatVersion is the version of the exported CSV layout
	DataFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// FullVersion returns the version with build metadata
func FullVersion() string {
	return fmt.Sprintf("%s (data %s, commit %s, built %s, %s)",
		Version, DataFormatVersion, GitCommit, BuildTime, runtime.Version())
}
