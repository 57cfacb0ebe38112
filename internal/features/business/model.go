package business

import "go-bizops/pkg/chartsvg"

type Mode string

const (
	ModeQuantity Mode = "quantity"
	ModeValue    Mode = "value"
)

// SummaryQuery carries the filters shared by all business dashboard queries.
// Date bounds are ISO YYYY-MM-DD; empty means unbounded.
type SummaryQuery struct {
	DivisionID string
	DateFrom   string
	DateTo     string
	Mode       Mode
	Statuses   []string
}

// StatusValue is the value-mode aggregate for one status label.
type StatusValue struct {
	FinalTotalWithGST float64 `json:"final_total_with_gst" bson:"final_total_with_gst"`
	Profit            float64 `json:"profit" bson:"profit"`
}

// Summary maps status labels to either a plain count (quantity mode) or a
// StatusValue (value mode). The two wire shapes are deliberate: quantity-mode
// consumers read a bare number, value-mode consumers an object.
type Summary struct {
	OpportunitiesByStatus map[string]interface{} `json:"opportunities_by_status"`
	ProjectsByStatus      map[string]interface{} `json:"projects_by_status"`
}

// DivisionStats is one division row of the divisions-stats endpoint.
type DivisionStats struct {
	DivisionID         string  `json:"division_id"`
	DivisionName       string  `json:"division_name"`
	OpportunitiesCount int64   `json:"opportunities_count"`
	ProjectsCount      int64   `json:"projects_count"`
	OpportunitiesValue float64 `json:"opportunities_value"`
	FinalTotalWithGST  float64 `json:"final_total_with_gst"`
	Profit             float64 `json:"profit"`
}

// Timeseries is the month-bucketed response for line charts. Series values
// are positional against Months.
type Timeseries struct {
	Months []string         `json:"months"`
	Series []chartsvg.Series `json:"series"`
}

type Metric string

const (
	MetricOpportunitiesByStatus   Metric = "opportunities_by_status"
	MetricProjectsByStatus        Metric = "projects_by_status"
	MetricOpportunitiesByDivision Metric = "opportunities_by_division"
	MetricProjectsByDivision      Metric = "projects_by_division"
)

// IsOpportunityMetric reports whether the metric aggregates opportunity
// records rather than project records.
func (m Metric) IsOpportunityMetric() bool {
	return m == MetricOpportunitiesByStatus || m == MetricOpportunitiesByDivision
}

// IsDivisionMetric reports whether the metric groups by division rather than
// by status.
func (m Metric) IsDivisionMetric() bool {
	return m == MetricOpportunitiesByDivision || m == MetricProjectsByDivision
}

// TimeseriesQuery selects one metric's month-bucketed aggregation.
type TimeseriesQuery struct {
	Metric Metric
	SummaryQuery
}
