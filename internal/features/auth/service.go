package auth

import (
	"context"
	"errors"

	"go-bizops/internal/common/models"
	"go-bizops/internal/features/user"
	"go-bizops/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
}

func NewAuthService(userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	if existing, _ := s.UserRepo.FindByUsername(ctx, username); existing != nil {
		return nil, errors.New("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := models.User{
		Username: username,
		Password: string(hashed),
		Email:    email,
		Status:   "active",
		Roles:    []string{"user"},
	}
	if err := s.UserRepo.Create(ctx, &newUser); err != nil {
		return nil, err
	}
	return &newUser, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	usr, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	switch usr.Status {
	case "suspended":
		return "", errors.New("account suspended")
	case "inactive":
		return "", errors.New("account inactive")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Roles)
	if err != nil {
		return "", err
	}

	_ = s.UserRepo.UpdateLastLogin(context.WithoutCancel(ctx), usr.ID)

	return token, nil
}
