package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
	"github.com/turbulence-sh/turbulence/internal/rank"
	"github.com/turbulence-sh/turbulence/internal/report"
)

func sampleReport() report.Report {
	return report.Report{
		Collection: rank.Collection{
			Results: []rank.Result{
				{
					File:       pipeline.FileRef{Path: "internal/core/engine.go", Ext: ".go"},
					Commits:    42,
					Complexity: 19,
					Score:      798,
				},
				{
					File:       pipeline.FileRef{Path: "cmd/main.go", Ext: ".go"},
					Commits:    7,
					Complexity: 4,
					Score:      28,
				},
			},
			Measured: 2,
			Failures: 1,
		},
		Summary: report.Summary{
			Scanned:  3,
			Measured: 2,
			Failures: 1,
			Elapsed:  1500 * time.Millisecond,
			Strategy: "parallel",
			Workers:  4,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected report.Format
		wantErr  bool
	}{
		{input: "text", expected: report.FormatText},
		{input: "json", expected: report.FormatJSON},
		{input: "yaml", expected: report.FormatYAML},
		{input: "html", expected: report.FormatHTML},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := report.ParseFormat(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, report.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
			assert.Equal(t, tt.input, format.String())
		})
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer

	err := report.Render(&buf, report.FormatText, sampleReport(), true)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "internal/core/engine.go")
	assert.Contains(t, output, "cmd/main.go")
	assert.Contains(t, output, "798.00")
	assert.Contains(t, output, "Measured 2 of 3 files (1 failed)")
	assert.Contains(t, output, "parallel, 4 workers")

	// Highest score renders first.
	assert.Less(t,
		strings.Index(output, "internal/core/engine.go"),
		strings.Index(output, "cmd/main.go"),
	)
}

func TestRenderTextEmptyCollection(t *testing.T) {
	empty := sampleReport()
	empty.Collection.Results = nil

	var buf bytes.Buffer

	err := report.Render(&buf, report.FormatText, empty, true)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No files met the ranking criteria.")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer

	err := report.Render(&buf, report.FormatJSON, sampleReport(), false)
	require.NoError(t, err)

	var decoded report.Model

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "internal/core/engine.go", decoded.Results[0].Path)
	assert.Equal(t, 42, decoded.Results[0].Commits)
	assert.InDelta(t, 798.0, decoded.Results[0].Score, 0.0001)
	assert.Equal(t, 3, decoded.Summary.Scanned)
	assert.Equal(t, 1, decoded.Summary.Failures)
	assert.Equal(t, int64(1500), decoded.Summary.ElapsedMS)
	assert.Equal(t, "parallel", decoded.Summary.Strategy)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer

	err := report.Render(&buf, report.FormatYAML, sampleReport(), false)
	require.NoError(t, err)

	var decoded report.Model

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "cmd/main.go", decoded.Results[1].Path)
	assert.Equal(t, 2, decoded.Summary.Measured)
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer

	err := report.Render(&buf, report.FormatHTML, sampleReport(), false)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "internal/core/engine.go")
	assert.Contains(t, output, "echarts")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer

	progress := report.NewProgress(&buf, 2)
	observer := progress.Observer()

	observer(pipeline.CompletionEvent{File: pipeline.FileRef{Path: "a.go"}, Seq: 0})
	assert.Contains(t, buf.String(), "1/2 measured")

	observer(pipeline.CompletionEvent{File: pipeline.FileRef{Path: "b.go"}, Failed: true, Seq: 1})
	assert.Contains(t, buf.String(), "2/2 measured")
	assert.Contains(t, buf.String(), "(1 failed)")

	progress.Finish()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	// Events after Finish are dropped.
	before := buf.Len()
	observer(pipeline.CompletionEvent{File: pipeline.FileRef{Path: "c.go"}, Seq: 2})
	assert.Equal(t, before, buf.Len())
}
