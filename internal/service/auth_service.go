package service

import (
	"context"
	"errors"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/repository"
	"github.com/aicode/auth-platform/internal/utils"
)

// LoginResult is returned by a successful Login call.
type LoginResult struct {
	User   *model.User
	Tokens utils.TokenPair
}

// AuthService drives the refresh-token lifecycle. A token moves from
// issued to exactly one of: rotated (a new token is issued and the old
// one revoked), revoked (logout), or expired. Rotation chains tokens
// one after another, so replaying a rotated token is caught as
// "not found or revoked" on its next use.
type AuthService struct {
	users  *UserService
	tokens TokenStore
	hasher *utils.Hasher
	codec  *utils.TokenCodec
}

func NewAuthService(users *UserService, tokens TokenStore, hasher *utils.Hasher, codec *utils.TokenCodec) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, codec: codec}
}

// Login verifies credentials and mints a persisted token pair. An
// unknown email and a wrong password both yield ErrInvalidCredentials
// so responses cannot be used to probe which emails are registered. A
// deactivated account is reported as such only after the lookup, and
// any downstream fault collapses to ErrLoginFailed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrLoginFailed
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.codec.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, ErrLoginFailed
	}
	if err := s.tokens.Save(ctx, user.ID, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		return nil, ErrLoginFailed
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair, revoking
// the presented token. Signature validity alone is not enough: the
// token must also have a live store record, so a revoked or rotated
// token is rejected even though its signature still verifies.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (utils.TokenPair, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return utils.TokenPair{}, ErrRefreshTokenExpired
		}
		return utils.TokenPair{}, ErrInvalidRefreshToken
	}

	record, err := s.tokens.Find(ctx, refreshToken)
	if err != nil {
		return utils.TokenPair{}, ErrRefreshFailed
	}
	if record == nil {
		return utils.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.codec.IssuePair(claims.UserID, claims.Email)
	if err != nil {
		return utils.TokenPair{}, ErrRefreshFailed
	}
	if err := s.tokens.Save(ctx, claims.UserID, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		return utils.TokenPair{}, ErrRefreshFailed
	}

	revoked, err := s.tokens.Revoke(ctx, refreshToken)
	if err != nil {
		return utils.TokenPair{}, ErrRefreshFailed
	}
	if !revoked {
		// A concurrent logout or rotation got there first.
		return utils.TokenPair{}, ErrInvalidRefreshToken
	}
	return pair, nil
}

// Logout revokes a single refresh token. It is idempotent: revoking an
// unknown or already-revoked token reports false without an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	revoked, err := s.tokens.Revoke(ctx, refreshToken)
	if err != nil {
		return false, ErrLogoutFailed
	}
	return revoked, nil
}

// LogoutAll revokes every active token for the user. Holding no active
// sessions is a valid end state, so the call always succeeds.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) (bool, error) {
	if _, err := s.tokens.RevokeAll(ctx, userID); err != nil {
		return false, ErrLogoutFailed
	}
	return true, nil
}

// ValidateUser re-confirms that the user behind an access token still
// exists. Used by the authenticated-route middleware.
func (s *AuthService) ValidateUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ActiveSessions returns how many live refresh tokens the user holds.
func (s *AuthService) ActiveSessions(ctx context.Context, userID string) (int64, error) {
	return s.tokens.CountActive(ctx, userID)
}

// TokenMetrics summarizes the refresh token table.
func (s *AuthService) TokenMetrics(ctx context.Context) (repository.TokenMetrics, error) {
	return s.tokens.Metrics(ctx)
}
