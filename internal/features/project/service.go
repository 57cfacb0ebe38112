package project

import (
	"context"
)

type ProjectService interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListRecentProjects(ctx context.Context, limit int64) ([]Project, error)
}

type ProjectServiceImpl struct {
	Repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) ProjectService {
	return &ProjectServiceImpl{
		Repo: repo,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, project *Project) error {
	return s.Repo.Create(ctx, project)
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProjectServiceImpl) ListRecentProjects(ctx context.Context, limit int64) ([]Project, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}
	return s.Repo.ListRecent(ctx, limit)
}
