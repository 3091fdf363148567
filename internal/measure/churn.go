// Package measure provides the default measurement capabilities consumed
// by the pipeline: git-history churn and tree-sitter structural
// complexity. Both implement pipeline.Measurer and are substitutable
// without touching the runner or the task factory.
package measure

import (
	"context"
	"fmt"
	"sync"

	"github.com/turbulence-sh/turbulence/internal/gitx"
	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

// Churn counts the commits that touched a file. The value returned
// through the capability contract is always a non-negative integer.
//
// The first Measure call builds a path-to-commit-count index in a single
// pass over history; subsequent calls are lookups, so measuring many
// files stays linear in history size rather than quadratic.
type Churn struct {
	repo  *gitx.Repository
	since string

	once     sync.Once
	counts   map[string]int
	indexErr error
}

// NewChurn creates a churn measurer over the given repository. A
// non-empty since revision restricts counting to commits after that
// reference point.
func NewChurn(repo *gitx.Repository, since string) *Churn {
	return &Churn{repo: repo, since: since}
}

// Measure returns the number of commits that touched the file. A file
// with no recorded history (e.g. never committed) measures zero; only a
// failure to read history itself is an error.
func (c *Churn) Measure(_ context.Context, file pipeline.FileRef) (float64, error) {
	c.once.Do(func() {
		c.counts, c.indexErr = c.repo.CommitCountsByPath(c.since)
	})

	if c.indexErr != nil {
		return 0, fmt.Errorf("index history: %w", c.indexErr)
	}

	return float64(c.counts[file.Path]), nil
}
