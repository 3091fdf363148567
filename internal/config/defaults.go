package config

// Default configuration values applied before file and env overrides.
const (
	// DefaultScanDir is the directory scanned when none are configured.
	DefaultScanDir = "."
	// DefaultMinScore keeps every scored file in the collection.
	DefaultMinScore = 0.0
	// DefaultLimit caps the displayed results.
	DefaultLimit = 30
	// DefaultStrategy is the concurrency strategy name.
	DefaultStrategy = "parallel"
	// DefaultWorkers of zero lets the parallel strategy size the pool
	// from GOMAXPROCS.
	DefaultWorkers = 0
	// DefaultFormat is the output renderer.
	DefaultFormat = "text"
)
