// Package service holds the business logic between the HTTP handlers and the
// store.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/internal/userapi/store"
	"github.com/kamelin22/user-api/pkg/cryptox"
	"github.com/kamelin22/user-api/pkg/idx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two must stay indistinguishable so login responses don't
	// leak which usernames exist.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrUsernameTaken = errors.New("username_taken")
	ErrInvalidInput  = errors.New("invalid_input")
)

type UserService struct {
	Store  store.Store
	Hasher cryptox.Hasher
}

// Register hashes the password with a fresh salt and persists a new user.
// The store's unique index on username decides races between concurrent
// registrations of the same name.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	return u, nil
}

// Login verifies the credentials and returns the stored user.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			// A hash that fails to parse means a corrupt record. Still answer
			// with the generic credential error, but keep the cause in logs.
			slogx.FromContext(ctx).Error("stored password hash unusable",
				"user_id", u.ID, "err", err)
		}
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
