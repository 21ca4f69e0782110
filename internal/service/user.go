package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/repository"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser records the learner on first contact. It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, firstName, username string) (bool, error) {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return false, nil
	}

	user := entities.NewUser(userID, chatID, firstName, username)
	created, err := s.repository.Save(ctx, user)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return created, nil
}

// FirstName returns the stored first name of userID, or "" when the learner is
// unknown or has none.
func (s *UserService) FirstName(ctx context.Context, userID int64) (string, error) {
	user, err := s.repository.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	return user.FirstName, nil
}
