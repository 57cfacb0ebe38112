package task

import (
	"context"
)

type TaskService interface {
	CreateTask(ctx context.Context, task *Task) error
	ListRecentTasks(ctx context.Context, limit int64) ([]Task, error)
}

type TaskServiceImpl struct {
	Repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return &TaskServiceImpl{
		Repo: repo,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, task *Task) error {
	if task.Status == "" {
		task.Status = "open"
	}
	return s.Repo.Create(ctx, task)
}

func (s *TaskServiceImpl) ListRecentTasks(ctx context.Context, limit int64) ([]Task, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}
	return s.Repo.ListRecent(ctx, limit)
}
