// Package service provides the business logic for accounts, profiles and
// cards, delegating persistence to repository interfaces and translating
// store failures into client errors.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/auth"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/repository"
)

// UserRepository defines the persistence operations on users.
type UserRepository interface {
	// Create stores a new user. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// List returns every user.
	List(ctx context.Context) ([]models.User, error)
	// GetByID fetches a user without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail fetches a user including the password hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile sets name and about.
	UpdateProfile(ctx context.Context, id, name, about string) (*models.User, error)
	// UpdateAvatar sets the avatar URL.
	UpdateAvatar(ctx context.Context, id, avatar string) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// SignupInput is the data accepted at signup. Empty profile fields take
// their defaults.
type SignupInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// AuthService implements signup and login.
type AuthService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is compared against when the email is unknown so both
	// login failures take about the same time.
	dummyHash string
}

// NewAuthService constructs an AuthService.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	dummy, _ := hasher.Hash("mesto-timing-equalizer")
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, dummyHash: dummy}
}

// Signup hashes the password and stores a new user. The returned user never
// carries the hash.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.InvalidInput(msgPasswordTooLong).Wrap(err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         orDefault(in.Name, models.DefaultName),
		About:        orDefault(in.About, models.DefaultAbout),
		Avatar:       orDefault(in.Avatar, models.DefaultAvatar),
		Email:        in.Email,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, user)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrDuplicate):
		return nil, apperror.Conflict(msgUserExists).Wrap(err)
	case errors.Is(err, repository.ErrConstraint), errors.Is(err, repository.ErrMalformedID):
		return nil, apperror.InvalidInput(msgInvalidSignup).Wrap(err)
	default:
		return nil, fmt.Errorf("create user: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

// Login checks the credentials and returns a signed token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return "", apperror.Unauthenticated(apperror.MsgBadCredentials)
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthenticated(apperror.MsgBadCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
