package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// renderYAML writes the report as a YAML document.
func renderYAML(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(buildModel(report)); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}

	return nil
}
