package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/NO-YA/MedBridge/internal/apperrors"
	"github.com/NO-YA/MedBridge/internal/model"
	"github.com/NO-YA/MedBridge/internal/password"
	"github.com/NO-YA/MedBridge/internal/repository"
)

// UserService exposes user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, name, email, plaintext string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *password.Hasher
}

// NewUserService builds a UserService with repository and credential hasher.
func NewUserService(repo repository.UserRepository, hasher *password.Hasher) UserService {
	return &userService{repo: repo, hasher: hasher}
}

// CreateUser rejects duplicate emails before hashing, so a failed create
// leaves the collection untouched. Email comparison is an exact match on the
// stored string.
func (s *userService) CreateUser(ctx context.Context, name, email, plaintext string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}
