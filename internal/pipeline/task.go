// Package pipeline implements the concurrent per-file measurement pipeline:
// task construction, bounded-concurrency execution, and completion events.
package pipeline

import "context"

// FileRef identifies one candidate source file. Identity is the Path;
// a FileRef is immutable once discovered.
type FileRef struct {
	Path string // Slash-separated path relative to the repository root.
	Ext  string // File extension including the leading dot, lower-cased.
}

// Measurer is the single capability contract consumed by the pipeline.
// Implementations compute one scalar metric for a file. They must be safe
// for concurrent use: the runner invokes Measure from multiple goroutines.
type Measurer interface {
	Measure(ctx context.Context, file FileRef) (float64, error)
}

// Task binds one file to its two measurement capabilities.
// Created by BuildTasks; consumed exactly once by the Runner.
type Task struct {
	File       FileRef
	Churn      Measurer
	Complexity Measurer
}

// Measurement is the outcome of executing a Task: either a commit count
// and complexity pair, or a failure reason. Never mutated after creation.
type Measurement struct {
	Commits    int
	Complexity float64
	Err        error
}

// Failed reports whether the measurement could not be produced.
func (m Measurement) Failed() bool {
	return m.Err != nil
}

// Outcome pairs a file with its measurement. The runner returns outcomes
// in completion order; ranking order is re-established by the aggregator.
type Outcome struct {
	File        FileRef
	Measurement Measurement
}

// CompletionEvent is delivered to the Observer exactly once per task.
// Seq increases monotonically in completion order, which need not match
// discovery order.
type CompletionEvent struct {
	File   FileRef
	Failed bool
	Seq    int
}

// Observer is a decoupled notification sink fed by the runner.
type Observer func(CompletionEvent)

// NopObserver discards all completion events.
func NopObserver(CompletionEvent) {}
