package core

import (
	"context"
	"fmt"
)

// Format selects one of the interchangeable output formats.
type Format string

const (
	FormatCompact  Format = "compact"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat converts a --format flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCompact, FormatJSON, FormatMarkdown, FormatPDF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected compact, json, markdown, or pdf)", s)
	}
}

// Renderer converts normalized summaries into a final output format.
// Implementations never see raw records and never re-derive summary data;
// they must produce valid output even for an empty summary.
type Renderer interface {
	RenderCrash(s *CrashSummary) ([]byte, error)
	RenderSearch(s *SearchResultSet) ([]byte, error)
	RenderCorrelations(s *CorrelationSummary) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string
}

// CrashFetchResult holds a decoded crash record along with the verbatim
// upstream payload, which --full prints without any transformation.
type CrashFetchResult struct {
	Record  *RawCrashRecord
	Payload []byte
}

// SearchParams is the parameter set for a Super Search request. Filters
// are combined with AND logic by the server; empty strings mean "no
// filter on this field".
type SearchParams struct {
	Signature       string
	Product         string
	Version         string
	Platform        string
	CPUArch         string
	Channel         string
	PlatformVersion string
	ProcessType     string
	Days            int
	Limit           int
	Facets          []string
	FacetsSize      int
	Sort            string
}

// CrashFetcher retrieves one processed crash record by ID.
type CrashFetcher interface {
	FetchCrash(ctx context.Context, crashID string, useAuth bool) (*CrashFetchResult, error)
}

// SearchFetcher runs a Super Search query.
type SearchFetcher interface {
	Search(ctx context.Context, params SearchParams) (*RawSearchResponse, error)
}

// CorrelationFetcher retrieves correlation documents from the CDN.
type CorrelationFetcher interface {
	FetchTotals(ctx context.Context) (*RawCorrelationTotals, error)
	FetchSignature(ctx context.Context, signature, channel string) (*RawCorrelationResponse, error)
}
