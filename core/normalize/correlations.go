package normalize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/crashtools/socorro-cli/core"
)

// Correlations converts the raw totals and per-signature correlation
// documents into a CorrelationSummary.
//
// Each item's percentages are item count over the scope total, times 100,
// rounded to one decimal place; a zero total yields 0.0 instead of a
// division by zero. Items are grouped by attribute name in the order the
// attributes first appear in the response, then each group is sorted by
// descending count, breaking ties lexicographically by label so output is
// deterministic across runs.
func Correlations(signature, channel string, totals *core.RawCorrelationTotals, resp *core.RawCorrelationResponse) *core.CorrelationSummary {
	refCount, _ := totals.TotalForChannel(channel)

	groupIndex := make(map[string]int)
	groups := make([]core.CorrelationGroup, 0)

	for _, r := range resp.Results {
		item := core.CorrelationItem{
			Label:  formatItemMap(r.Item),
			Count:  r.CountGroup,
			SigPct: percentage(r.CountGroup, resp.Total),
			RefPct: percentage(r.CountReference, float64(refCount)),
		}
		if r.Prior != nil {
			item.Prior = &core.CorrelationPrior{
				Label:  formatItemMap(r.Prior.Item),
				SigPct: percentage(r.Prior.CountGroup, r.Prior.TotalGroup),
				RefPct: percentage(r.Prior.CountReference, r.Prior.TotalReference),
			}
		}

		attr := attributeName(r.Item)
		i, ok := groupIndex[attr]
		if !ok {
			i = len(groups)
			groupIndex[attr] = i
			groups = append(groups, core.CorrelationGroup{Attribute: attr})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	for i := range groups {
		items := groups[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].Count != items[b].Count {
				return items[a].Count > items[b].Count
			}
			return items[a].Label < items[b].Label
		})
	}

	return &core.CorrelationSummary{
		Signature: signature,
		Channel:   channel,
		Date:      totals.Date,
		SigCount:  resp.Total,
		RefCount:  refCount,
		Groups:    groups,
	}
}

// percentage computes count/total*100 rounded to one decimal place,
// reporting 0.0 when the total is zero.
func percentage(count, total float64) float64 {
	if total <= 0 {
		return 0.0
	}
	return math.Round(count/total*1000) / 10
}

// attributeName derives the grouping key for an item: its attribute keys
// in sorted order, joined for the rare multi-attribute items.
func attributeName(item map[string]any) string {
	keys := sortedKeys(item)
	return strings.Join(keys, " ∧ ")
}

// formatItemMap renders an item map as "key = value" pairs in sorted key
// order, joined with a logical-and sign.
func formatItemMap(item map[string]any) string {
	keys := sortedKeys(item)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s = %s", k, formatItemValue(item[k])))
	}
	return strings.Join(parts, " ∧ ")
}

func sortedKeys(item map[string]any) []string {
	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatItemValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("%t", val)
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; print integers without a dot.
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
