package render

import (
	"encoding/json"
	"fmt"

	"github.com/crashtools/socorro-cli/core"
)

// JSONRenderer produces the structured output format. It is a complete,
// lossless serialization of the summary: every field the summary carries
// appears, absent optional fields are omitted (never emitted as null), and
// re-parsing the output yields the original summary. This is the only
// format with a round-trip guarantee.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// RenderCrash serializes a crash summary.
func (r *JSONRenderer) RenderCrash(s *core.CrashSummary) ([]byte, error) {
	return marshal(s)
}

// RenderSearch serializes a search result set.
func (r *JSONRenderer) RenderSearch(s *core.SearchResultSet) ([]byte, error) {
	return marshal(s)
}

// RenderCorrelations serializes a correlation summary.
func (r *JSONRenderer) RenderCorrelations(s *core.CorrelationSummary) ([]byte, error) {
	return marshal(s)
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return append(data, '\n'), nil
}
