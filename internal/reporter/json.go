package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/squares/internal/pipeline"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Results []pipeline.Result `json:"results"`
	Summary pipeline.Summary  `json:"summary"`
}

// Report outputs results as JSON
func (r *JSONReporter) Report(results []pipeline.Result) error {
	output := JSONOutput{
		Results: results,
		Summary: pipeline.Summarize(results),
	}
	if output.Results == nil {
		output.Results = []pipeline.Result{}
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
