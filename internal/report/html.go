package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth       = "100%"
	chartHeight      = "600px"
	chartLabelRotate = 60
	chartBarColor    = "#e74c3c"
)

// renderHTML writes the ranking as a standalone HTML page with a bar chart.
func renderHTML(w io.Writer, report Report) error {
	bar := buildScoreChart(report)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("rendering html chart: %w", err)
	}

	return nil
}

// buildScoreChart creates a bar chart of ranked files by score.
func buildScoreChart(report Report) *charts.Bar {
	bar := charts.NewBar()

	subtitle := fmt.Sprintf(
		"%d files measured, %d failed, strategy %s",
		report.Summary.Measured, report.Summary.Failures, report.Summary.Strategy,
	)

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Turbulence",
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "File Turbulence",
			Subtitle: subtitle,
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithGridOpts(opts.Grid{
			Top:          "15%",
			Bottom:       "25%",
			Left:         "5%",
			Right:        "5%",
			ContainLabel: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate:   chartLabelRotate,
				Interval: "0",
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	labels := make([]string, len(report.Collection.Results))
	data := make([]opts.BarData, len(report.Collection.Results))

	for i, result := range report.Collection.Results {
		labels[i] = result.File.Path
		data[i] = opts.BarData{
			Value:     result.Score,
			ItemStyle: &opts.ItemStyle{Color: chartBarColor},
		}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Score", data)

	return bar
}
