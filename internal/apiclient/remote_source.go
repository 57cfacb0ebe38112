package apiclient

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"
)

// divisionsRetries is the fixed retry count for the divisions fetch.
const divisionsRetries = 2

// RemoteSource serves widget data from a remote business API instead of the
// in-process services. The remote API is a black box; only methods, paths
// and response shapes are assumed.
type RemoteSource struct {
	Client *Client
}

func NewRemoteSource(client *Client) *RemoteSource {
	return &RemoteSource{Client: client}
}

func summaryValues(q business.SummaryQuery) url.Values {
	values := url.Values{}
	if q.DivisionID != "" {
		values.Set("division_id", q.DivisionID)
	}
	if q.DateFrom != "" {
		values.Set("date_from", q.DateFrom)
	}
	if q.DateTo != "" {
		values.Set("date_to", q.DateTo)
	}
	if q.Mode != "" {
		values.Set("mode", string(q.Mode))
	}
	if len(q.Statuses) > 0 {
		values.Set("statuses", strings.Join(q.Statuses, ","))
	}
	return values
}

func (s *RemoteSource) DashboardSummary(ctx context.Context, q business.SummaryQuery) (*business.Summary, error) {
	var summary business.Summary
	if err := s.Client.Get(ctx, "/api/projects/business/dashboard", summaryValues(q), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *RemoteSource) DivisionStats(ctx context.Context, q business.SummaryQuery) ([]business.DivisionStats, error) {
	var stats []business.DivisionStats
	err := s.Client.GetWithRetry(ctx, "/api/projects/business/divisions-stats", summaryValues(q), &stats, divisionsRetries)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *RemoteSource) Timeseries(ctx context.Context, q business.TimeseriesQuery) (*business.Timeseries, error) {
	values := summaryValues(q.SummaryQuery)
	values.Set("metric", string(q.Metric))

	var ts business.Timeseries
	if err := s.Client.Get(ctx, "/api/projects/business/dashboard-timeseries", values, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (s *RemoteSource) RecentTasks(ctx context.Context, limit int64) ([]task.Task, error) {
	values := url.Values{}
	values.Set("limit", strconv.FormatInt(limit, 10))

	var tasks []task.Task
	if err := s.Client.Get(ctx, "/api/tasks", values, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *RemoteSource) RecentProjects(ctx context.Context, limit int64) ([]project.Project, error) {
	values := url.Values{}
	values.Set("limit", strconv.FormatInt(limit, 10))

	var projects []project.Project
	if err := s.Client.Get(ctx, "/api/projects/business/projects", values, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
