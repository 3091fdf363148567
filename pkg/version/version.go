// Package version holds build metadata injected at link time.
package version

// These are overridden via -ldflags at release builds.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the Git hash the binary was built from.
	Commit = "<unknown>"

	// Date is the build timestamp.
	Date = "<unknown>"
)
