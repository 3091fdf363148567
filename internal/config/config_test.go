package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbulence-sh/turbulence/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Scan: config.ScanConfig{Dirs: []string{"."}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(*config.Config) {},
		},
		{
			name:    "no scan dirs",
			mutate:  func(c *config.Config) { c.Scan.Dirs = nil },
			wantErr: config.ErrNoScanDirs,
		},
		{
			name:    "negative workers",
			mutate:  func(c *config.Config) { c.Pipeline.Workers = -1 },
			wantErr: config.ErrInvalidWorkers,
		},
		{
			name:    "negative limit",
			mutate:  func(c *config.Config) { c.Rank.Limit = -5 },
			wantErr: config.ErrInvalidLimit,
		},
		{
			name:    "negative task timeout",
			mutate:  func(c *config.Config) { c.Pipeline.TaskTimeout = -time.Second },
			wantErr: config.ErrInvalidTaskTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// An explicit path to a missing file is an error; an empty path with
	// no file anywhere falls back to defaults. Run from a clean dir so a
	// developer's own config cannot leak in.
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{config.DefaultScanDir}, cfg.Scan.Dirs)
	assert.NotEmpty(t, cfg.Scan.Extensions)
	assert.Contains(t, cfg.Scan.Extensions, ".go")
	assert.InDelta(t, config.DefaultMinScore, cfg.Rank.MinScore, 0.0001)
	assert.Equal(t, config.DefaultLimit, cfg.Rank.Limit)
	assert.Equal(t, config.DefaultStrategy, cfg.Pipeline.Strategy)
	assert.Equal(t, config.DefaultWorkers, cfg.Pipeline.Workers)
	assert.Zero(t, cfg.Pipeline.TaskTimeout)
	assert.Equal(t, config.DefaultFormat, cfg.Output.Format)
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turbulence.yaml")

	content := `
scan:
  dirs:
    - src
    - lib
  extensions:
    - .go
  ignore:
    - "*_gen.go"
churn:
  since: v1.0.0
rank:
  min_score: 12.5
  limit: 10
pipeline:
  strategy: sequential
  workers: 2
  task_timeout: 30s
output:
  format: json
  destination: report.json
metrics:
  listen: ":9090"
`

	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "lib"}, cfg.Scan.Dirs)
	assert.Equal(t, []string{".go"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"*_gen.go"}, cfg.Scan.Ignore)
	assert.Equal(t, "v1.0.0", cfg.Churn.Since)
	assert.InDelta(t, 12.5, cfg.Rank.MinScore, 0.0001)
	assert.Equal(t, 10, cfg.Rank.Limit)
	assert.Equal(t, "sequential", cfg.Pipeline.Strategy)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.TaskTimeout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "report.json", cfg.Output.Destination)
	assert.Equal(t, ":9090", cfg.Metrics.Listen)
}

func TestLoadInvalidFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turbulence.yaml")

	err := os.WriteFile(path, []byte("rank:\n  limit: -3\n"), 0o644)
	require.NoError(t, err)

	_, err = config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidLimit)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
