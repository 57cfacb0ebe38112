package widget

import (
	"context"

	"go-bizops/internal/features/business"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/task"
)

// LocalDataSource serves widget data from the in-process services. It is the
// default DataSource; deployments that point at a remote business API swap in
// apiclient.RemoteSource instead.
type LocalDataSource struct {
	Business business.BusinessService
	Tasks    task.TaskService
	Projects project.ProjectService
}

func NewLocalDataSource(b business.BusinessService, t task.TaskService, p project.ProjectService) *LocalDataSource {
	return &LocalDataSource{Business: b, Tasks: t, Projects: p}
}

func (s *LocalDataSource) DashboardSummary(ctx context.Context, q business.SummaryQuery) (*business.Summary, error) {
	return s.Business.GetDashboardSummary(ctx, q)
}

func (s *LocalDataSource) DivisionStats(ctx context.Context, q business.SummaryQuery) ([]business.DivisionStats, error) {
	return s.Business.GetDivisionStats(ctx, q)
}

func (s *LocalDataSource) Timeseries(ctx context.Context, q business.TimeseriesQuery) (*business.Timeseries, error) {
	return s.Business.GetTimeseries(ctx, q)
}

func (s *LocalDataSource) RecentTasks(ctx context.Context, limit int64) ([]task.Task, error) {
	return s.Tasks.ListRecentTasks(ctx, limit)
}

func (s *LocalDataSource) RecentProjects(ctx context.Context, limit int64) ([]project.Project, error) {
	return s.Projects.ListRecentProjects(ctx, limit)
}
