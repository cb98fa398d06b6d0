package services

import (
	"context"
	"errors"

	"jrs-backend/internal/auth"
	"jrs-backend/internal/models"
	"jrs-backend/internal/repositories"
)

var ErrInvalidRole = errors.New("invalid role")

type UserService struct {
	Repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if req.Username == "" || req.Password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Role = req.Role
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("account suspended")
	}
	return user, nil
}
