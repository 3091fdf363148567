package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// renderJSON writes the report as indented JSON.
func renderJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(buildModel(report)); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}

	return nil
}
