package report

import "time"

// summaryDurationPrecision rounds elapsed times for display.
const summaryDurationPrecision = time.Millisecond

// Model is the serializable shape shared by the JSON and YAML renderers.
type Model struct {
	Results []ModelResult `json:"results" yaml:"results"`
	Summary ModelSummary  `json:"summary" yaml:"summary"`
}

// ModelResult is one ranked file in serialized output.
type ModelResult struct {
	Path       string  `json:"path"       yaml:"path"`
	Commits    int     `json:"commits"    yaml:"commits"`
	Complexity float64 `json:"complexity" yaml:"complexity"`
	Score      float64 `json:"score"      yaml:"score"`
}

// ModelSummary carries the run totals in serialized output.
type ModelSummary struct {
	Scanned   int    `json:"scanned"    yaml:"scanned"`
	Measured  int    `json:"measured"   yaml:"measured"`
	Failures  int    `json:"failures"   yaml:"failures"`
	ElapsedMS int64  `json:"elapsed_ms" yaml:"elapsed_ms"`
	Strategy  string `json:"strategy"   yaml:"strategy"`
	Workers   int    `json:"workers"    yaml:"workers"`
}

// buildModel converts a report into its serializable shape.
func buildModel(report Report) Model {
	results := make([]ModelResult, 0, len(report.Collection.Results))
	for _, result := range report.Collection.Results {
		results = append(results, ModelResult{
			Path:       result.File.Path,
			Commits:    result.Commits,
			Complexity: result.Complexity,
			Score:      result.Score,
		})
	}

	return Model{
		Results: results,
		Summary: ModelSummary{
			Scanned:   report.Summary.Scanned,
			Measured:  report.Summary.Measured,
			Failures:  report.Summary.Failures,
			ElapsedMS: report.Summary.Elapsed.Milliseconds(),
			Strategy:  report.Summary.Strategy,
			Workers:   report.Summary.Workers,
		},
	}
}
