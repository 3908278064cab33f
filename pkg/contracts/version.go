package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "1.0.0"

	// DataFormatVersion is the version of the processed-report format
	DataFormatVersion = "v1"
)

// VersionInfo returns a human-readable version string including the Go
// runtime version.
func VersionInfo() string {
	return fmt.Sprintf("arcli %s (data format %s, %s)", Version, DataFormatVersion, runtime.Version())
}
