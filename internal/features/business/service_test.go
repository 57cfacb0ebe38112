package business

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPivotTimeseries(t *testing.T) {
	rows := []bson.M{
		{"_id": bson.M{"month": "2024-02", "label": "Won"}, "value": int32(3)},
		{"_id": bson.M{"month": "2024-01", "label": "Won"}, "value": int64(2)},
		{"_id": bson.M{"month": "2024-01", "label": "Lost"}, "value": 5.0},
	}

	ts := pivotTimeseries(rows)

	if len(ts.Months) != 2 || ts.Months[0] != "2024-01" || ts.Months[1] != "2024-02" {
		t.Fatalf("months = %v, want sorted [2024-01 2024-02]", ts.Months)
	}
	if len(ts.Series) != 2 {
		t.Fatalf("series count = %d, want 2", len(ts.Series))
	}

	// Series are sorted by label; gaps are zero-filled positionally.
	lost, won := ts.Series[0], ts.Series[1]
	if lost.Label != "Lost" || won.Label != "Won" {
		t.Fatalf("series labels = %q,%q, want Lost,Won", lost.Label, won.Label)
	}
	if lost.Values[0] != 5 || lost.Values[1] != 0 {
		t.Errorf("Lost values = %v, want [5 0]", lost.Values)
	}
	if won.Values[0] != 2 || won.Values[1] != 3 {
		t.Errorf("Won values = %v, want [2 3]", won.Values)
	}
}

func TestBuildMatch(t *testing.T) {
	opp := true

	tests := []struct {
		name  string
		q     SummaryQuery
		isOpp *bool
		check func(t *testing.T, m bson.M)
	}{
		{
			name:  "Empty query with kind",
			q:     SummaryQuery{},
			isOpp: &opp,
			check: func(t *testing.T, m bson.M) {
				if m["is_opportunity"] != true {
					t.Errorf("is_opportunity missing: %v", m)
				}
				if _, ok := m["start_date"]; ok {
					t.Errorf("unbounded query must not constrain start_date: %v", m)
				}
			},
		},
		{
			name: "Division and statuses",
			q:    SummaryQuery{DivisionID: "electrical", Statuses: []string{"Won", "Lost"}},
			check: func(t *testing.T, m bson.M) {
				if m["division_id"] != "electrical" {
					t.Errorf("division filter missing: %v", m)
				}
				in, ok := m["status"].(bson.M)
				if !ok || len(in["$in"].([]string)) != 2 {
					t.Errorf("status $in missing: %v", m)
				}
			},
		},
		{
			name: "Date range upper bound is inclusive",
			q:    SummaryQuery{DateFrom: "2024-01-01", DateTo: "2024-01-31"},
			check: func(t *testing.T, m bson.M) {
				r, ok := m["start_date"].(bson.M)
				if !ok {
					t.Fatalf("start_date range missing: %v", m)
				}
				from := r["$gte"].(time.Time)
				to := r["$lt"].(time.Time)
				if from.Format("2006-01-02") != "2024-01-01" {
					t.Errorf("lower bound = %v", from)
				}
				if to.Format("2006-01-02") != "2024-02-01" {
					t.Errorf("upper bound should cover the whole end day, got %v", to)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, buildMatch(tt.q, tt.isOpp))
		})
	}
}
