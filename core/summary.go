package core

// Summary types are the curated views produced by core/normalize. They are
// immutable after construction and carry exactly what renderers need:
// optional fields are pointers so that "absent" and "present but empty"
// stay distinguishable all the way through the structured renderer.

// StackFrame is one frame of a summarized thread. Function is always set;
// when the symbol is unknown the normalizer substitutes a display value
// built from the module/offset, or "???" if neither is known.
type StackFrame struct {
	Index    int     `json:"index"`
	Function string  `json:"function"`
	File     *string `json:"file,omitempty"`
	Line     *int    `json:"line,omitempty"`
}

// ThreadSummary is one thread of a crash summary, truncated to the
// requested depth. Name is the upstream thread name or a synthetic
// "thread N" label when the source did not supply one.
type ThreadSummary struct {
	Index    int          `json:"index"`
	Name     string       `json:"name"`
	Crashing bool         `json:"crashing"`
	Frames   []StackFrame `json:"frames"`
}

// CrashSummary is the bounded, privacy-safe view of one crash record.
//
// Threads holds either the single selected thread (all-threads off) or
// every thread in the record (all-threads on); in both cases each thread
// is truncated to the requested depth and the crashing thread, if one was
// identified, carries Crashing=true.
type CrashSummary struct {
	CrashID        string          `json:"crash_id"`
	Signature      *string         `json:"signature,omitempty"`
	Reason         *string         `json:"reason,omitempty"`
	Address        *string         `json:"address,omitempty"`
	MozCrashReason *string         `json:"moz_crash_reason,omitempty"`
	AbortMessage   *string         `json:"abort_message,omitempty"`
	Product        *string         `json:"product,omitempty"`
	Version        *string         `json:"version,omitempty"`
	BuildID        *string         `json:"build_id,omitempty"`
	Channel        *string         `json:"channel,omitempty"`
	OSName         *string         `json:"os_name,omitempty"`
	OSVersion      *string         `json:"os_version,omitempty"`
	AndroidModel   *string         `json:"android_model,omitempty"`
	AndroidVersion *string         `json:"android_version,omitempty"`
	AllThreads     bool            `json:"all_threads"`
	Threads        []ThreadSummary `json:"threads"`
}

// CrashRow is one display-ready row of a search result set.
type CrashRow struct {
	CrashID   string  `json:"crash_id"`
	Date      *string `json:"date,omitempty"`
	Signature *string `json:"signature,omitempty"`
	Product   *string `json:"product,omitempty"`
	Version   *string `json:"version,omitempty"`
	Platform  *string `json:"platform,omitempty"`
	BuildID   *string `json:"build_id,omitempty"`
	Channel   *string `json:"channel,omitempty"`
}

// FacetBucket is one (value, count) aggregation bucket.
type FacetBucket struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

// FacetGroup is the bucket list for one requested facet field. Buckets
// keep the upstream count-descending order, truncated to the configured
// facet size. A field the server omitted has an empty bucket list.
type FacetGroup struct {
	Field   string        `json:"field"`
	Buckets []FacetBucket `json:"buckets"`
}

// SearchResultSet is the display-ready form of a search response. Total is
// the full match count and is independent of how many rows or buckets were
// returned; it is copied from upstream, never recomputed.
type SearchResultSet struct {
	Total  uint64       `json:"total"`
	Rows   []CrashRow   `json:"rows"`
	Facets []FacetGroup `json:"facets"`
}

// CorrelationPrior is the conditional percentages for a correlation item
// when another attribute is also present.
type CorrelationPrior struct {
	Label  string  `json:"label"`
	SigPct float64 `json:"sig_pct"`
	RefPct float64 `json:"ref_pct"`
}

// CorrelationItem is one attribute value with its share of the signature's
// crashes (SigPct) and of the whole channel population (RefPct), both
// rounded to one decimal place.
type CorrelationItem struct {
	Label  string            `json:"label"`
	Count  float64           `json:"count"`
	SigPct float64           `json:"sig_pct"`
	RefPct float64           `json:"ref_pct"`
	Prior  *CorrelationPrior `json:"prior,omitempty"`
}

// CorrelationGroup holds the items for one attribute name, sorted by
// descending count with ties broken lexicographically by label.
type CorrelationGroup struct {
	Attribute string            `json:"attribute"`
	Items     []CorrelationItem `json:"items"`
}

// CorrelationSummary is the percentage-annotated view of a signature's
// correlation data. Groups keep the order in which attributes first
// appeared in the upstream response.
type CorrelationSummary struct {
	Signature string             `json:"signature"`
	Channel   string             `json:"channel"`
	Date      string             `json:"date"`
	SigCount  float64            `json:"sig_count"`
	RefCount  uint64             `json:"ref_count"`
	Groups    []CorrelationGroup `json:"groups"`
}
