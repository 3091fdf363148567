package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the default OTel tracer name for the pipeline package.
const tracerName = "turbulence"

// Runner executes tasks with bounded concurrency and isolated per-task
// failure handling. A failed measurement is recorded as a failure marker;
// it never aborts the run or other in-flight tasks, and there are no
// implicit retries.
type Runner struct {
	// Workers is the maximum number of tasks in flight. Values below one
	// are treated as one.
	Workers int

	// Observer receives exactly one CompletionEvent per task, invoked from
	// a single collector goroutine. Nil means no notifications.
	Observer Observer

	// TaskTimeout bounds each task's measurements via context deadline.
	// Zero disables the per-task timeout.
	TaskTimeout time.Duration

	// Tracer is the OTel tracer for the run span. When nil, falls back to
	// otel.Tracer("turbulence").
	Tracer trace.Tracer
}

// tracer returns the configured tracer, falling back to the global provider.
func (runner *Runner) tracer() trace.Tracer {
	if runner.Tracer != nil {
		return runner.Tracer
	}

	return otel.Tracer(tracerName)
}

// Run executes all tasks and returns one Outcome per task. The slice is in
// completion order; callers re-establish ranking order downstream. Tasks
// are started in discovery order as worker slots free up.
func (runner *Runner) Run(ctx context.Context, tasks []Task) []Outcome {
	ctx, span := runner.tracer().Start(ctx, "turbulence.run",
		trace.WithAttributes(
			attribute.Int("run.tasks", len(tasks)),
			attribute.Int("run.workers", runner.workers()),
		))
	defer span.End()

	taskChan := make(chan Task)
	resultChan := make(chan Outcome)

	var wg sync.WaitGroup

	workers := runner.workers()
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			for task := range taskChan {
				resultChan <- Outcome{
					File:        task.File,
					Measurement: runner.execute(ctx, task),
				}
			}
		}()
	}

	// The collector goroutine is the single writer for the outcome slice,
	// the failure counter, and the event sequence index, so concurrent
	// completions never race on shared state.
	outcomes := make([]Outcome, 0, len(tasks))
	failures := 0
	collected := make(chan struct{})

	go func() {
		defer close(collected)

		seq := 0

		for outcome := range resultChan {
			if outcome.Measurement.Failed() {
				failures++
			}

			outcomes = append(outcomes, outcome)
			runner.notify(CompletionEvent{
				File:   outcome.File,
				Failed: outcome.Measurement.Failed(),
				Seq:    seq,
			})

			seq++
		}
	}()

	for _, task := range tasks {
		taskChan <- task
	}

	close(taskChan)
	wg.Wait()
	close(resultChan)
	<-collected

	span.SetAttributes(attribute.Int("run.failures", failures))

	return outcomes
}

// execute runs both measurements for one task. Either failure produces a
// failure Measurement carrying the wrapped reason.
func (runner *Runner) execute(ctx context.Context, task Task) Measurement {
	if runner.TaskTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, runner.TaskTimeout)
		defer cancel()
	}

	commits, churnErr := task.Churn.Measure(ctx, task.File)
	if churnErr != nil {
		return Measurement{Err: fmt.Errorf("churn %s: %w", task.File.Path, churnErr)}
	}

	complexity, complexityErr := task.Complexity.Measure(ctx, task.File)
	if complexityErr != nil {
		return Measurement{Err: fmt.Errorf("complexity %s: %w", task.File.Path, complexityErr)}
	}

	return Measurement{Commits: int(commits), Complexity: complexity}
}

func (runner *Runner) workers() int {
	if runner.Workers < 1 {
		return 1
	}

	return runner.Workers
}

func (runner *Runner) notify(event CompletionEvent) {
	if runner.Observer == nil {
		return
	}

	runner.Observer(event)
}
