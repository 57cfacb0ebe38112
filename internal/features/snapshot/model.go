package snapshot

import (
	"time"

	"go-bizops/internal/features/business"
)

// Snapshot is one daily capture of the business dashboard aggregates, used
// for trend reporting without re-aggregating historical data.
type Snapshot struct {
	Date          string                   `json:"date" bson:"date"` // ISO YYYY-MM-DD
	Quantities    *business.Summary        `json:"quantities" bson:"quantities"`
	Values        *business.Summary        `json:"values" bson:"values"`
	DivisionStats []business.DivisionStats `json:"division_stats" bson:"division_stats"`
	TakenAt       time.Time                `json:"taken_at" bson:"taken_at"`
}
