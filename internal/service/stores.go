package service

import (
	"context"
	"time"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/repository"
)

// UserStore is the narrow contract the services need from user
// persistence. *repository.UserRepo satisfies it; tests inject
// in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, upd repository.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	FindActive(ctx context.Context) ([]model.User, error)
}

// TokenStore is the contract for refresh token persistence.
// *repository.TokenRepo satisfies it.
type TokenStore interface {
	Save(ctx context.Context, userID, token string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, token string) (bool, error)
	RevokeAll(ctx context.Context, userID string) (int64, error)
	CleanupExpired(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, userID string) (int64, error)
	Metrics(ctx context.Context) (repository.TokenMetrics, error)
}
