// Package rank converts raw pipeline measurements into a scored, ordered
// result collection.
package rank

import (
	"sort"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

// Scorer derives a composite risk score from a file's commit count and
// complexity. It is a named, swappable strategy: the aggregator never
// assumes a particular formula.
type Scorer func(commits int, complexity float64) float64

// ScoreProduct is the default scoring strategy: commits multiplied by
// complexity. Files that are both volatile and convoluted rank highest.
func ScoreProduct(commits int, complexity float64) float64 {
	return float64(commits) * complexity
}

// Result is one scored file.
type Result struct {
	File       pipeline.FileRef
	Commits    int
	Complexity float64
	Score      float64
}

// Collection is the pipeline's terminal artifact: results sorted
// descending by score, ties broken by ascending path, truncated to the
// configured limit.
type Collection struct {
	Results []Result

	// Measured is the number of successful measurements that entered
	// scoring, before the minimum-score filter.
	Measured int

	// Failures counts files whose measurement failed. Failed files are
	// excluded from Results so partial failures never distort scores.
	Failures int
}

// Options controls aggregation.
type Options struct {
	// MinScore filters out results scoring below it.
	MinScore float64

	// Limit truncates the collection. Values below one mean unbounded.
	Limit int

	// Scorer computes the composite score. Nil selects ScoreProduct.
	Scorer Scorer
}

// Aggregate converts outcomes into a Collection. It is a pure function of
// its inputs: the same outcomes yield the same Collection regardless of
// the completion order the runner happened to produce.
func Aggregate(outcomes []pipeline.Outcome, opts Options) Collection {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = ScoreProduct
	}

	collection := Collection{Results: make([]Result, 0, len(outcomes))}

	for _, outcome := range outcomes {
		if outcome.Measurement.Failed() {
			collection.Failures++

			continue
		}

		collection.Measured++

		score := scorer(outcome.Measurement.Commits, outcome.Measurement.Complexity)
		if score < opts.MinScore {
			continue
		}

		collection.Results = append(collection.Results, Result{
			File:       outcome.File,
			Commits:    outcome.Measurement.Commits,
			Complexity: outcome.Measurement.Complexity,
			Score:      score,
		})
	}

	sort.Slice(collection.Results, func(i, j int) bool {
		left, right := collection.Results[i], collection.Results[j]
		if left.Score != right.Score {
			return left.Score > right.Score
		}

		return left.File.Path < right.File.Path
	})

	if opts.Limit > 0 && len(collection.Results) > opts.Limit {
		collection.Results = collection.Results[:opts.Limit]
	}

	return collection
}
