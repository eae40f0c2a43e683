package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/repository"
)

// UserService reads and edits user profiles.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err, msgInvalidUserID)
	}
	return user, nil
}

// UpdateProfile changes the name and about fields of the caller's record.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, about string) (*models.User, error) {
	user, err := s.repo.UpdateProfile(ctx, userID, name, about)
	if err != nil {
		return nil, userError(err, msgInvalidProfile)
	}
	return user, nil
}

// UpdateAvatar changes the avatar of the caller's record.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatar string) (*models.User, error) {
	user, err := s.repo.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, userError(err, msgInvalidAvatar)
	}
	return user, nil
}

// userError maps a repository failure on a single user. invalidMsg is used
// for malformed ids and rejected field values.
func userError(err error, invalidMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(msgUserNotFound).Wrap(err)
	case errors.Is(err, repository.ErrMalformedID), errors.Is(err, repository.ErrConstraint):
		return apperror.InvalidInput(invalidMsg).Wrap(err)
	default:
		return fmt.Errorf("user store: %w", err)
	}
}
