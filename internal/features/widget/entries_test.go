package widget

import (
	"fmt"
	"math"
	"testing"

	"go-bizops/internal/features/business"
)

func TestExtractEntriesQuantityMode(t *testing.T) {
	byStatus := map[string]interface{}{
		"Won":  int32(4),
		"Lost": float64(2),
	}

	entries := ExtractEntries("quantity", byStatus)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Profit != nil {
			t.Errorf("%s: quantity mode must not carry profit", e.Label)
		}
		switch e.Label {
		case "Won":
			if e.Value != 4 {
				t.Errorf("Won = %v, want 4", e.Value)
			}
		case "Lost":
			if e.Value != 2 {
				t.Errorf("Lost = %v, want 2", e.Value)
			}
		}
	}
}

func TestExtractEntriesValueMode(t *testing.T) {
	byStatus := map[string]interface{}{
		"Won": business.StatusValue{FinalTotalWithGST: 1000, Profit: 200},
		"Quoted": map[string]interface{}{
			"final_total_with_gst": float64(500),
			"profit":               float64(50),
		},
	}

	entries := ExtractEntries("value", byStatus)
	for _, e := range entries {
		switch e.Label {
		case "Won":
			if e.Value != 1000 || e.Profit == nil || *e.Profit != 200 {
				t.Errorf("Won = %+v, want value 1000 profit 200", e)
			}
		case "Quoted":
			if e.Value != 500 || e.Profit == nil || *e.Profit != 50 {
				t.Errorf("Quoted = %+v, want value 500 profit 50", e)
			}
		}
	}
}

func TestPrepareEntriesTopTenAndPercent(t *testing.T) {
	entries := make([]ChartEntry, 0, 13)
	for i := 1; i <= 12; i++ {
		entries = append(entries, ChartEntry{Label: fmt.Sprintf("s%d", i), Value: float64(i)})
	}
	entries = append(entries, ChartEntry{Label: "zero", Value: 0})

	got := PrepareEntries(entries)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Label != "s12" || got[9].Label != "s3" {
		t.Errorf("order = %s..%s, want s12..s3", got[0].Label, got[9].Label)
	}

	var sum float64
	for _, e := range got {
		sum += e.Percent
	}
	// Percent is over the displayed subset, not the original total.
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percent sum = %v, want 100", sum)
	}
}

func TestPrepareEntriesAllNonPositive(t *testing.T) {
	got := PrepareEntries([]ChartEntry{{Label: "a", Value: 0}, {Label: "b", Value: -3}})
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestEntriesFromDivisionStats(t *testing.T) {
	rows := []business.DivisionStats{
		{DivisionID: "d1", DivisionName: "Civil", ProjectsCount: 7, OpportunitiesCount: 3, FinalTotalWithGST: 9000, OpportunitiesValue: 4000, Profit: 1200},
		{DivisionID: "d2", ProjectsCount: 2},
	}

	got := EntriesFromDivisionStats(rows, false, "quantity")
	if got[0].Label != "Civil" || got[0].Value != 7 {
		t.Errorf("got %+v, want Civil/7", got[0])
	}
	if got[1].Label != "d2" {
		t.Errorf("empty name should fall back to id, got %q", got[1].Label)
	}

	got = EntriesFromDivisionStats(rows, true, "value")
	if got[0].Value != 4000 || got[0].Profit != nil {
		t.Errorf("opportunity value row = %+v, want 4000 without profit", got[0])
	}

	got = EntriesFromDivisionStats(rows, false, "value")
	if got[0].Value != 9000 || got[0].Profit == nil || *got[0].Profit != 1200 {
		t.Errorf("project value row = %+v, want 9000 with profit 1200", got[0])
	}
}
