package user

import (
	"context"

	"go-bizops/internal/common/models"
)

type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type UserServiceImpl struct {
	Repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{
		Repo: repo,
	}
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.FindByID(ctx, id)
}
