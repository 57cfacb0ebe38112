package business

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-bizops/internal/connectors"
	"go-bizops/internal/features/project"
	"go-bizops/pkg/chartsvg"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type BusinessService interface {
	GetDashboardSummary(ctx context.Context, q SummaryQuery) (*Summary, error)
	GetDivisionStats(ctx context.Context, q SummaryQuery) ([]DivisionStats, error)
	GetTimeseries(ctx context.Context, q TimeseriesQuery) (*Timeseries, error)
}

type BusinessServiceImpl struct {
	ProjectRepo project.ProjectRepository
	Divisions   *connectors.DivisionStatsConnector // nil unless DIVISIONS_DSN is set
	Logger      *zap.Logger
}

func NewBusinessService(projectRepo project.ProjectRepository, divisions *connectors.DivisionStatsConnector, logger *zap.Logger) BusinessService {
	return &BusinessServiceImpl{
		ProjectRepo: projectRepo,
		Divisions:   divisions,
		Logger:      logger,
	}
}

func (s *BusinessServiceImpl) GetDashboardSummary(ctx context.Context, q SummaryQuery) (*Summary, error) {
	opportunities, err := s.aggregateByStatus(ctx, q, true)
	if err != nil {
		return nil, err
	}

	projects, err := s.aggregateByStatus(ctx, q, false)
	if err != nil {
		return nil, err
	}

	return &Summary{
		OpportunitiesByStatus: opportunities,
		ProjectsByStatus:      projects,
	}, nil
}

func (s *BusinessServiceImpl) aggregateByStatus(ctx context.Context, q SummaryQuery, isOpportunity bool) (map[string]interface{}, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildMatch(q, &isOpportunity)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.M{"$sum": 1}},
			{Key: "final_total_with_gst", Value: bson.M{"$sum": "$final_total_with_gst"}},
			{Key: "profit", Value: bson.M{"$sum": "$profit"}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	results, err := s.ProjectRepo.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]interface{}, len(results))
	for _, res := range results {
		label := "Unknown"
		if v, ok := res["_id"]; ok && v != nil {
			label = fmt.Sprintf("%v", v)
		}

		if q.Mode == ModeValue {
			byStatus[label] = StatusValue{
				FinalTotalWithGST: toFloat(res["final_total_with_gst"]),
				Profit:            toFloat(res["profit"]),
			}
		} else {
			byStatus[label] = toFloat(res["count"])
		}
	}
	return byStatus, nil
}

func (s *BusinessServiceImpl) GetDivisionStats(ctx context.Context, q SummaryQuery) ([]DivisionStats, error) {
	if s.Divisions != nil {
		rows, err := s.Divisions.Query(ctx, q.DateFrom, q.DateTo)
		if err != nil {
			s.Logger.Warn("external divisions source failed, falling back to local aggregation", zap.Error(err))
		} else {
			stats := make([]DivisionStats, 0, len(rows))
			for _, row := range rows {
				stats = append(stats, DivisionStats{
					DivisionID:         row.DivisionID,
					DivisionName:       row.DivisionName,
					OpportunitiesCount: row.OpportunitiesCount,
					ProjectsCount:      row.ProjectsCount,
					OpportunitiesValue: row.OpportunitiesValue,
					FinalTotalWithGST:  row.FinalTotalWithGST,
					Profit:             row.Profit,
				})
			}
			return stats, nil
		}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildMatch(q, nil)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$division_id"},
			{Key: "division_name", Value: bson.M{"$first": "$division_name"}},
			{Key: "opportunities_count", Value: bson.M{"$sum": bson.M{"$cond": bson.A{"$is_opportunity", 1, 0}}}},
			{Key: "projects_count", Value: bson.M{"$sum": bson.M{"$cond": bson.A{"$is_opportunity", 0, 1}}}},
			{Key: "opportunities_value", Value: bson.M{"$sum": bson.M{"$cond": bson.A{"$is_opportunity", "$final_total_with_gst", 0}}}},
			{Key: "final_total_with_gst", Value: bson.M{"$sum": bson.M{"$cond": bson.A{"$is_opportunity", 0, "$final_total_with_gst"}}}},
			{Key: "profit", Value: bson.M{"$sum": "$profit"}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "division_name", Value: 1}}}},
	}

	results, err := s.ProjectRepo.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	stats := make([]DivisionStats, 0, len(results))
	for _, res := range results {
		row := DivisionStats{
			OpportunitiesCount: int64(toFloat(res["opportunities_count"])),
			ProjectsCount:      int64(toFloat(res["projects_count"])),
			OpportunitiesValue: toFloat(res["opportunities_value"]),
			FinalTotalWithGST:  toFloat(res["final_total_with_gst"]),
			Profit:             toFloat(res["profit"]),
		}
		if v, ok := res["_id"]; ok && v != nil {
			row.DivisionID = fmt.Sprintf("%v", v)
		}
		if v, ok := res["division_name"]; ok && v != nil {
			row.DivisionName = fmt.Sprintf("%v", v)
		}
		stats = append(stats, row)
	}
	return stats, nil
}

func (s *BusinessServiceImpl) GetTimeseries(ctx context.Context, q TimeseriesQuery) (*Timeseries, error) {
	isOpportunity := q.Metric.IsOpportunityMetric()

	labelField := "$status"
	if q.Metric.IsDivisionMetric() {
		labelField = "$division_name"
	}

	var accumulator interface{} = bson.M{"$sum": 1}
	if q.Mode == ModeValue {
		accumulator = bson.M{"$sum": "$final_total_with_gst"}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildMatch(q.SummaryQuery, &isOpportunity)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.M{
				"month": bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$start_date"}},
				"label": labelField,
			}},
			{Key: "value", Value: accumulator},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.month", Value: 1}}}},
	}

	results, err := s.ProjectRepo.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	return pivotTimeseries(results), nil
}

// pivotTimeseries turns {month,label}->value rows into the positional
// months+series wire shape. Gaps are zero-filled so every series has one
// value per month.
func pivotTimeseries(rows []bson.M) *Timeseries {
	monthSet := make(map[string]bool)
	values := make(map[string]map[string]float64) // label -> month -> value

	for _, row := range rows {
		id, _ := row["_id"].(bson.M)
		if id == nil {
			continue
		}
		month := fmt.Sprintf("%v", id["month"])
		label := "Unknown"
		if v, ok := id["label"]; ok && v != nil {
			label = fmt.Sprintf("%v", v)
		}

		monthSet[month] = true
		if values[label] == nil {
			values[label] = make(map[string]float64)
		}
		values[label][month] += toFloat(row["value"])
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	labels := make([]string, 0, len(values))
	for l := range values {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	series := make([]chartsvg.Series, 0, len(labels))
	for _, label := range labels {
		vals := make([]float64, len(months))
		for i, m := range months {
			vals[i] = values[label][m]
		}
		series = append(series, chartsvg.Series{Label: label, Values: vals})
	}

	return &Timeseries{Months: months, Series: series}
}

// buildMatch translates a query into the $match stage. isOpportunity is nil
// when both record kinds should be included (division stats).
func buildMatch(q SummaryQuery, isOpportunity *bool) bson.M {
	match := bson.M{}
	if isOpportunity != nil {
		match["is_opportunity"] = *isOpportunity
	}
	if q.DivisionID != "" {
		match["division_id"] = q.DivisionID
	}
	if len(q.Statuses) > 0 {
		match["status"] = bson.M{"$in": q.Statuses}
	}

	dateRange := bson.M{}
	if q.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
			dateRange["$gte"] = t
		}
	}
	if q.DateTo != "" {
		if t, err := time.Parse("2006-01-02", q.DateTo); err == nil {
			// Inclusive upper bound: the whole end day belongs to the range.
			dateRange["$lt"] = t.AddDate(0, 0, 1)
		}
	}
	if len(dateRange) > 0 {
		match["start_date"] = dateRange
	}

	return match
}

func toFloat(v interface{}) float64 {
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
