package normalize

import "github.com/crashtools/socorro-cli/core"

// Search converts a raw search response into a SearchResultSet.
//
// Rows are taken in upstream order, up to limit; sort order is a request
// parameter, not a local concern. A limit of zero (the default whenever
// facets were requested) produces no rows at all: facet-only queries must
// not imply row fetching. For each requested facet field the upstream
// bucket list is truncated to facetsSize (zero means no truncation); a
// field the server omitted yields an empty bucket list. Total is copied
// verbatim and is never recomputed from the returned rows.
func Search(raw *core.RawSearchResponse, limit int, facetFields []string, facetsSize int) *core.SearchResultSet {
	if limit < 0 {
		limit = 0
	}
	if facetsSize < 0 {
		facetsSize = 0
	}

	n := limit
	if n > len(raw.Hits) {
		n = len(raw.Hits)
	}
	rows := make([]core.CrashRow, 0, n)
	for _, hit := range raw.Hits[:n] {
		rows = append(rows, summarizeHit(hit))
	}

	facets := make([]core.FacetGroup, 0, len(facetFields))
	for _, field := range facetFields {
		buckets := raw.Facets[field]
		if facetsSize > 0 && len(buckets) > facetsSize {
			buckets = buckets[:facetsSize]
		}
		group := core.FacetGroup{Field: field, Buckets: make([]core.FacetBucket, 0, len(buckets))}
		for _, b := range buckets {
			group.Buckets = append(group.Buckets, core.FacetBucket{Value: b.Term, Count: b.Count})
		}
		facets = append(facets, group)
	}

	return &core.SearchResultSet{
		Total:  raw.Total,
		Rows:   rows,
		Facets: facets,
	}
}

func summarizeHit(hit core.RawCrashHit) core.CrashRow {
	row := core.CrashRow{
		CrashID:   hit.UUID,
		Date:      hit.Date,
		Signature: hit.Signature,
		Product:   hit.Product,
		Version:   hit.Version,
		Platform:  hit.Platform,
		Channel:   hit.ReleaseChannel,
	}
	if hit.BuildID != nil {
		build := string(*hit.BuildID)
		row.BuildID = &build
	}
	return row
}
