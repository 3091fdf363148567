package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

// constMeasurer returns a fixed value for every file.
type constMeasurer float64

func (m constMeasurer) Measure(_ context.Context, _ pipeline.FileRef) (float64, error) {
	return float64(m), nil
}

func TestBuildTasks(t *testing.T) {
	files := []pipeline.FileRef{
		{Path: "a.go", Ext: ".go"},
		{Path: "pkg/b.go", Ext: ".go"},
		{Path: "script.py", Ext: ".py"},
	}

	churn := constMeasurer(3)
	complexity := constMeasurer(7)

	tasks, err := pipeline.BuildTasks(files, churn, complexity)
	require.NoError(t, err)

	require.Len(t, tasks, len(files))

	for i, task := range tasks {
		assert.Equal(t, files[i], task.File)
		assert.Equal(t, churn, task.Churn)
		assert.Equal(t, complexity, task.Complexity)
	}
}

func TestBuildTasksEmptyFiles(t *testing.T) {
	tasks, err := pipeline.BuildTasks(nil, constMeasurer(1), constMeasurer(1))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestBuildTasksNilMeasurer(t *testing.T) {
	files := []pipeline.FileRef{{Path: "a.go", Ext: ".go"}}

	_, err := pipeline.BuildTasks(files, nil, constMeasurer(1))
	require.ErrorIs(t, err, pipeline.ErrNilMeasurer)

	_, err = pipeline.BuildTasks(files, constMeasurer(1), nil)
	require.ErrorIs(t, err, pipeline.ErrNilMeasurer)
}
