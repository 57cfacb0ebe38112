package widget

import (
	"testing"
	"time"
)

func TestCalculateDateRange(t *testing.T) {
	now := time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   string
		cs, ce   string
		wantFrom string
		wantTo   string
	}{
		{"all is unbounded", "all", "", "", "", ""},
		{"unknown falls back to all", "fortnight", "", "", "", ""},
		{"custom passes bounds through", "custom", "2024-01-01", "2024-03-31", "2024-01-01", "2024-03-31"},
		{"last_year is a calendar year", "last_year", "", "", "2023-07-15", "2024-07-15"},
		{"last_6_months is 180 days", "last_6_months", "", "", "2024-01-17", "2024-07-15"},
		{"last_3_months is 90 days", "last_3_months", "", "", "2024-04-16", "2024-07-15"},
		{"last_month is 30 days", "last_month", "", "", "2024-06-15", "2024-07-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := calculateDateRangeAt(tt.period, tt.cs, tt.ce, now)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("got (%q, %q), want (%q, %q)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestCalculateDateRangeLeapDay(t *testing.T) {
	now := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	from, _ := calculateDateRangeAt("last_year", "", "", now)
	// AddDate normalizes Feb 29 of a non-leap year to Mar 1.
	if from != "2023-03-01" {
		t.Errorf("from = %q, want 2023-03-01", from)
	}
}
