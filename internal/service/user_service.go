// Package service holds the authentication business logic: user
// registration and account reads in UserService, and the token
// lifecycle (login, refresh rotation, logout) in AuthService. Both are
// constructed with explicit store handles so tests can substitute
// in-memory fakes.
package service

import (
	"context"
	"errors"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/repository"
	"github.com/aicode/auth-platform/internal/utils"
	"github.com/aicode/auth-platform/internal/validator"
)

// RegistrationResult is returned by a successful Register call. The
// user is logged in immediately: the refresh token is persisted
// through the same store path login uses, so rotation and revocation
// apply to signup tokens too.
type RegistrationResult struct {
	User   *model.User
	Tokens utils.TokenPair
}

// UserService orchestrates registration and account reads.
type UserService struct {
	users  UserStore
	tokens TokenStore
	hasher *utils.Hasher
	codec  *utils.TokenCodec
}

func NewUserService(users UserStore, tokens TokenStore, hasher *utils.Hasher, codec *utils.TokenCodec) *UserService {
	return &UserService{users: users, tokens: tokens, hasher: hasher, codec: codec}
}

// Register validates the input, enforces email uniqueness, hashes the
// password, persists the user, and issues an initial token pair.
// Validation failures and duplicate emails surface as themselves;
// every other downstream fault collapses to ErrRegistrationFailed.
func (s *UserService) Register(ctx context.Context, input validator.RegistrationInput) (*RegistrationResult, error) {
	res := validator.ValidateRegistration(input)
	if !res.Valid {
		return nil, &ValidationError{Fields: res.Errors}
	}

	// UX pre-check only; the unique index enforces this under races.
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, ErrRegistrationFailed
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrRegistrationFailed
	}

	user, err := s.users.Create(ctx, input.Email, input.FirstName, input.LastName, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, ErrRegistrationFailed
	}

	pair, err := s.codec.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, ErrRegistrationFailed
	}
	if err := s.tokens.Save(ctx, user.ID, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		return nil, ErrRegistrationFailed
	}

	return &RegistrationResult{User: user, Tokens: pair}, nil
}

// GetByID returns the user with the given id, or nil if absent.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

// GetByEmail returns the user with the given (normalized) email, or nil.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// Update applies a partial update to the user record.
func (s *UserService) Update(ctx context.Context, id string, upd repository.UserUpdate) (*model.User, error) {
	return s.users.Update(ctx, id, upd)
}

// Delete removes the user record. The auth flows never call this; it
// exists as a repository primitive for account administration.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}
