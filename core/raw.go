// Package core defines the data model and pipeline interfaces for socorro-cli.
// Raw types mirror the loosely-typed JSON shapes returned by the Socorro API
// and the correlations CDN; summary types are the curated, bounded views that
// renderers consume. Conversion between the two happens only in core/normalize.
package core

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON value that may arrive as either a string or a
// number. Socorro returns build IDs both ways depending on the endpoint.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", data)
}

// RawStackFrame is a single frame of a thread's stack as reported upstream.
type RawStackFrame struct {
	Frame    int     `json:"frame"`
	Function *string `json:"function,omitempty"`
	File     *string `json:"file,omitempty"`
	Line     *int    `json:"line,omitempty"`
	Module   *string `json:"module,omitempty"`
	Offset   *string `json:"offset,omitempty"`
}

// RawThread is a thread captured in a crash report.
type RawThread struct {
	Thread     *int            `json:"thread,omitempty"`
	ThreadName *string         `json:"thread_name,omitempty"`
	Frames     []RawStackFrame `json:"frames"`
}

// RawCrashInfo is the crash_info sub-object of a processed crash.
type RawCrashInfo struct {
	Type           *string `json:"type,omitempty"`
	Address        *string `json:"address,omitempty"`
	CrashingThread *int    `json:"crashing_thread,omitempty"`
}

// RawJSONDump is the json_dump sub-object. Some crash versions only report
// the crashing thread, the crash info, or the thread list here.
type RawJSONDump struct {
	CrashingThread *int          `json:"crashing_thread,omitempty"`
	CrashInfo      *RawCrashInfo `json:"crash_info,omitempty"`
	Threads        []RawThread   `json:"threads,omitempty"`
}

// RawCrashRecord is a processed crash as returned by the Socorro API.
//
// Only publicly-disclosable fields are modeled here. Fields that carry
// user-identifying or otherwise protected content must never be added to
// this type, even though the upstream payload may contain them: anything
// not listed is dropped at decode time and cannot leak into summaries.
type RawCrashRecord struct {
	UUID           string        `json:"uuid"`
	Signature      *string       `json:"signature,omitempty"`
	Product        *string       `json:"product,omitempty"`
	Version        *string       `json:"version,omitempty"`
	OSName         *string       `json:"os_name,omitempty"`
	OSVersion      *string       `json:"os_version,omitempty"`
	Build          *FlexString   `json:"build,omitempty"`
	ReleaseChannel *string       `json:"release_channel,omitempty"`
	CrashInfo      *RawCrashInfo `json:"crash_info,omitempty"`
	MozCrashReason *string       `json:"moz_crash_reason,omitempty"`
	AbortMessage   *string       `json:"abort_message,omitempty"`
	AndroidModel   *string       `json:"android_model,omitempty"`
	AndroidVersion *string       `json:"android_version,omitempty"`
	CrashingThread *int          `json:"crashing_thread,omitempty"`
	Threads        []RawThread   `json:"threads,omitempty"`
	JSONDump       *RawJSONDump  `json:"json_dump,omitempty"`
}

// RawCrashHit is one row of a Super Search response.
type RawCrashHit struct {
	UUID            string      `json:"uuid"`
	Date            *string     `json:"date,omitempty"`
	Signature       *string     `json:"signature,omitempty"`
	Product         *string     `json:"product,omitempty"`
	Version         *string     `json:"version,omitempty"`
	Platform        *string     `json:"platform,omitempty"`
	BuildID         *FlexString `json:"build_id,omitempty"`
	ReleaseChannel  *string     `json:"release_channel,omitempty"`
	PlatformVersion *string     `json:"platform_version,omitempty"`
}

// RawFacetBucket is one aggregation bucket (value and count) of a facet.
type RawFacetBucket struct {
	Term  string `json:"term"`
	Count uint64 `json:"count"`
}

// RawSearchResponse is a Super Search response: total match count, up to
// _results_number hit rows, and one bucket list per requested facet. The
// server omits facets with zero cardinality.
type RawSearchResponse struct {
	Total  uint64                      `json:"total"`
	Hits   []RawCrashHit               `json:"hits"`
	Facets map[string][]RawFacetBucket `json:"facets,omitempty"`
}

// RawCorrelationTotals is the per-channel crash totals document published
// alongside correlation data.
type RawCorrelationTotals struct {
	Date    string `json:"date"`
	Release uint64 `json:"release"`
	Beta    uint64 `json:"beta"`
	Nightly uint64 `json:"nightly"`
	ESR     uint64 `json:"esr"`
}

// TotalForChannel returns the crash total for the given channel, and whether
// the channel is one the totals document knows about.
func (t *RawCorrelationTotals) TotalForChannel(channel string) (uint64, bool) {
	switch channel {
	case "release":
		return t.Release, true
	case "beta":
		return t.Beta, true
	case "nightly":
		return t.Nightly, true
	case "esr":
		return t.ESR, true
	default:
		return 0, false
	}
}

// RawCorrelationPrior is the conditional breakdown attached to a correlation
// result: the same counts restricted to crashes that also carry another
// attribute.
type RawCorrelationPrior struct {
	Item           map[string]any `json:"item"`
	CountReference float64        `json:"count_reference"`
	CountGroup     float64        `json:"count_group"`
	TotalReference float64        `json:"total_reference"`
	TotalGroup     float64        `json:"total_group"`
}

// RawCorrelationResult is one over-represented attribute for a signature.
type RawCorrelationResult struct {
	Item           map[string]any       `json:"item"`
	CountReference float64              `json:"count_reference"`
	CountGroup     float64              `json:"count_group"`
	Prior          *RawCorrelationPrior `json:"prior,omitempty"`
}

// RawCorrelationResponse is the per-signature correlations document.
type RawCorrelationResponse struct {
	Total   float64                `json:"total"`
	Results []RawCorrelationResult `json:"results"`
}
