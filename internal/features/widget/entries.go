package widget

import (
	"sort"

	"go-bizops/internal/features/business"
)

const maxDisplayedEntries = 10

// ChartEntry is one normalized bar/slice worth of data. Percent is relative
// to the displayed subset, so displayed percentages always sum to 100.
type ChartEntry struct {
	Label   string   `json:"label"`
	Value   float64  `json:"value"`
	Profit  *float64 `json:"profit,omitempty"`
	Percent float64  `json:"percent"`
}

// ExtractEntries normalizes the two status-map wire shapes into entries:
// quantity mode reads bare numbers, value mode reads {final_total_with_gst,
// profit} objects. Labels the extractor cannot read become zero entries and
// get dropped by PrepareEntries.
func ExtractEntries(mode string, byLabel map[string]interface{}) []ChartEntry {
	entries := make([]ChartEntry, 0, len(byLabel))
	for label, raw := range byLabel {
		entry := ChartEntry{Label: label}

		switch v := raw.(type) {
		case business.StatusValue:
			if mode == "value" {
				entry.Value = v.FinalTotalWithGST
				profit := v.Profit
				entry.Profit = &profit
			}
		case map[string]interface{}:
			if mode == "value" {
				entry.Value = firstNumber(v, "final_total_with_gst", "opportunities_value")
				if p, ok := v["profit"]; ok {
					profit := toNumber(p)
					entry.Profit = &profit
				}
			}
		default:
			if mode != "value" {
				entry.Value = toNumber(raw)
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

// EntriesFromDivisionStats normalizes division rows for a chart metric.
func EntriesFromDivisionStats(rows []business.DivisionStats, opportunities bool, mode string) []ChartEntry {
	entries := make([]ChartEntry, 0, len(rows))
	for _, row := range rows {
		entry := ChartEntry{Label: row.DivisionName}
		if entry.Label == "" {
			entry.Label = row.DivisionID
		}

		switch {
		case mode == "value" && opportunities:
			entry.Value = row.OpportunitiesValue
		case mode == "value":
			entry.Value = row.FinalTotalWithGST
			profit := row.Profit
			entry.Profit = &profit
		case opportunities:
			entry.Value = float64(row.OpportunitiesCount)
		default:
			entry.Value = float64(row.ProjectsCount)
		}

		entries = append(entries, entry)
	}
	return entries
}

// PrepareEntries applies the display contract: drop non-positive values,
// sort descending, keep the top 10 and compute percentages over what is
// displayed. Entries below the cutoff are silently dropped, no "other"
// bucket.
func PrepareEntries(entries []ChartEntry) []ChartEntry {
	kept := make([]ChartEntry, 0, len(entries))
	for _, e := range entries {
		if e.Value > 0 {
			kept = append(kept, e)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Value > kept[j].Value
	})

	if len(kept) > maxDisplayedEntries {
		kept = kept[:maxDisplayedEntries]
	}

	var sum float64
	for _, e := range kept {
		sum += e.Value
	}
	if sum > 0 {
		for i := range kept {
			kept[i].Percent = kept[i].Value / sum * 100
		}
	}

	return kept
}

func firstNumber(m map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return toNumber(v)
		}
	}
	return 0
}

func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
