package pipeline

import "errors"

// ErrNilMeasurer indicates a task factory was given a nil measurement
// capability. This is a configuration error: it fails the whole run
// before any task executes.
var ErrNilMeasurer = errors.New("measurement capability must not be nil")

// BuildTasks creates one immutable Task per discovered file, binding it to
// the churn and complexity capabilities. Pure: nothing is executed here.
func BuildTasks(files []FileRef, churn, complexity Measurer) ([]Task, error) {
	if churn == nil || complexity == nil {
		return nil, ErrNilMeasurer
	}

	tasks := make([]Task, len(files))
	for i, file := range files {
		tasks[i] = Task{
			File:       file,
			Churn:      churn,
			Complexity: complexity,
		}
	}

	return tasks, nil
}
