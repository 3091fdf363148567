// Package config loads and validates turbulence configuration.
package config

import (
	"errors"
	"time"
)

// Config is the top-level configuration struct for turbulence.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Scan     ScanConfig     `mapstructure:"scan"`
	Churn    ChurnConfig    `mapstructure:"churn"`
	Rank     RankConfig     `mapstructure:"rank"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ScanConfig controls file discovery.
type ScanConfig struct {
	Dirs       []string `mapstructure:"dirs"`
	Extensions []string `mapstructure:"extensions"`
	Ignore     []string `mapstructure:"ignore"`
}

// ChurnConfig controls the churn measurement.
type ChurnConfig struct {
	// Since restricts counting to commits after this revision.
	Since string `mapstructure:"since"`
}

// RankConfig controls result aggregation.
type RankConfig struct {
	MinScore float64 `mapstructure:"min_score"`
	Limit    int     `mapstructure:"limit"`
}

// PipelineConfig holds scheduling knobs.
type PipelineConfig struct {
	Strategy    string        `mapstructure:"strategy"`
	Workers     int           `mapstructure:"workers"`
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
}

// OutputConfig selects the renderer and destination.
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	Destination string `mapstructure:"destination"`
}

// MetricsConfig controls the optional /metrics endpoint.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// Sentinel errors for configuration validation.
var (
	// ErrNoScanDirs indicates no directories were configured to scan.
	ErrNoScanDirs = errors.New("scan.dirs must list at least one directory")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("pipeline.workers must be non-negative")
	// ErrInvalidLimit indicates the display limit is negative.
	ErrInvalidLimit = errors.New("rank.limit must be non-negative")
	// ErrInvalidTaskTimeout indicates the per-task timeout is negative.
	ErrInvalidTaskTimeout = errors.New("pipeline.task_timeout must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
// Closed-set fields (strategy, format) are validated where they are
// parsed, so adding a variant never needs a change here.
func (c *Config) Validate() error {
	if len(c.Scan.Dirs) == 0 {
		return ErrNoScanDirs
	}

	if c.Pipeline.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Rank.Limit < 0 {
		return ErrInvalidLimit
	}

	if c.Pipeline.TaskTimeout < 0 {
		return ErrInvalidTaskTimeout
	}

	return nil
}
