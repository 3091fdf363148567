package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Severity thresholds as fractions of the top score in the collection.
const (
	severityHighFraction = 0.66
	severityMidFraction  = 0.33
)

const scorePrecision = 2

// renderText writes a ranked table followed by a one-line run summary.
func renderText(w io.Writer, report Report, noColor bool) error {
	if len(report.Collection.Results) == 0 {
		fmt.Fprintln(w, "No files met the ranking criteria.")

		return writeSummary(w, report.Summary)
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"#", "File", "Commits", "Complexity", "Score"})

	topScore := report.Collection.Results[0].Score

	for i, result := range report.Collection.Results {
		writer.AppendRow(table.Row{
			i + 1,
			result.File.Path,
			result.Commits,
			fmt.Sprintf("%.*f", scorePrecision, result.Complexity),
			colorScore(result.Score, topScore, noColor),
		})
	}

	writer.Render()

	return writeSummary(w, report.Summary)
}

// colorScore formats the score, colored by severity relative to the top
// score: red for the hottest band, yellow for the middle, green below.
func colorScore(score, topScore float64, noColor bool) string {
	text := fmt.Sprintf("%.*f", scorePrecision, score)
	if noColor || topScore <= 0 {
		return text
	}

	switch {
	case score >= topScore*severityHighFraction:
		return color.New(color.FgRed).Sprint(text)
	case score >= topScore*severityMidFraction:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgGreen).Sprint(text)
	}
}

func writeSummary(w io.Writer, summary Summary) error {
	_, err := fmt.Fprintf(w, "Measured %s of %s files (%s failed) in %s [%s, %d workers]\n",
		humanize.Comma(int64(summary.Measured)),
		humanize.Comma(int64(summary.Scanned)),
		humanize.Comma(int64(summary.Failures)),
		summary.Elapsed.Round(summaryDurationPrecision),
		summary.Strategy,
		summary.Workers,
	)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
