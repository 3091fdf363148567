// Package report renders ranked results and drives the progress display.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/turbulence-sh/turbulence/internal/rank"
)

// Format selects the output renderer. The set is closed and matched
// exhaustively; extension happens by adding a variant here.
type Format int

const (
	// FormatText renders a terminal table.
	FormatText Format = iota
	// FormatJSON renders machine-readable JSON.
	FormatJSON
	// FormatYAML renders machine-readable YAML.
	FormatYAML
	// FormatHTML renders an HTML bar chart of the top files.
	FormatHTML
)

// Format names accepted in configuration.
const (
	formatNameText = "text"
	formatNameJSON = "json"
	formatNameYAML = "yaml"
	formatNameHTML = "html"
)

// ErrUnknownFormat indicates a format name outside the closed set.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a configuration name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case formatNameText:
		return FormatText, nil
	case formatNameJSON:
		return FormatJSON, nil
	case formatNameYAML:
		return FormatYAML, nil
	case formatNameHTML:
		return FormatHTML, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return formatNameJSON
	case FormatYAML:
		return formatNameYAML
	case FormatHTML:
		return formatNameHTML
	case FormatText:
		return formatNameText
	default:
		return formatNameText
	}
}

// Summary describes one completed run for the rendered footer.
type Summary struct {
	Scanned  int
	Measured int
	Failures int
	Elapsed  time.Duration
	Strategy string
	Workers  int
}

// Report is the input to every renderer.
type Report struct {
	Collection rank.Collection
	Summary    Summary
}

// Render writes the report in the given format.
func Render(w io.Writer, format Format, report Report, noColor bool) error {
	switch format {
	case FormatText:
		return renderText(w, report, noColor)
	case FormatJSON:
		return renderJSON(w, report)
	case FormatYAML:
		return renderYAML(w, report)
	case FormatHTML:
		return renderHTML(w, report)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}
