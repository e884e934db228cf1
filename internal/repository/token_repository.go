package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/utils"
)

// DefaultRefreshTTL is applied when a token is saved without an
// explicit expiry.
const DefaultRefreshTTL = 7 * 24 * time.Hour

// TokenRepo persists refresh tokens in the `refresh_tokens` table.
// Only the SHA-256 hash of a token is stored; every lookup hashes the
// presented raw value first.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// TokenMetrics summarizes the refresh token table for observability.
type TokenMetrics struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Expired int64 `json:"expired"`
	Revoked int64 `json:"revoked"`
}

// Save inserts a refresh token row for the user. A zero expiresAt
// defaults to DefaultRefreshTTL from now.
func (r *TokenRepo) Save(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if expiresAt.IsZero() {
		expiresAt = time.Now().UTC().Add(DefaultRefreshTTL)
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, utils.HashRefreshRaw(token), expiresAt)
	return err
}

// Find returns the stored record for a raw token, or nil unless the
// record is currently valid: present, not revoked, and not expired.
// A revoked token with a still-valid signature must not pass here.
func (r *TokenRepo) Find(ctx context.Context, token string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,token_hash,expires_at,is_revoked,created_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		utils.HashRefreshRaw(token)).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.IsRevoked, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !t.Valid(time.Now().UTC()) {
		return nil, nil
	}
	return &t, nil
}

// Revoke marks a token revoked. The conditional WHERE makes concurrent
// revocations race safely: at most one caller sees true, the rest see
// false ("already revoked").
func (r *TokenRepo) Revoke(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET is_revoked=1 WHERE token_hash=? AND is_revoked=0",
		utils.HashRefreshRaw(token))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokeAll revokes every active token for the user and returns how
// many were revoked. Zero is a valid outcome, not an error.
func (r *TokenRepo) RevokeAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET is_revoked=1 WHERE user_id=? AND is_revoked=0",
		userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CleanupExpired deletes rows that are expired or revoked and returns
// the number removed. Deletion only ever happens through this sweep.
func (r *TokenRepo) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < UTC_TIMESTAMP() OR is_revoked=1")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountActive returns the number of live (non-revoked, unexpired)
// tokens held by the user.
func (r *TokenRepo) CountActive(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM refresh_tokens WHERE user_id=? AND is_revoked=0 AND expires_at > UTC_TIMESTAMP()",
		userID).Scan(&n)
	return n, err
}

// Metrics counts tokens by state across the whole table.
func (r *TokenRepo) Metrics(ctx context.Context) (TokenMetrics, error) {
	var m TokenMetrics
	err := r.DB.QueryRowContext(ctx, `
        SELECT COUNT(*),
               COALESCE(SUM(is_revoked=0 AND expires_at > UTC_TIMESTAMP()),0),
               COALESCE(SUM(is_revoked=0 AND expires_at <= UTC_TIMESTAMP()),0),
               COALESCE(SUM(is_revoked=1),0)
        FROM refresh_tokens`).
		Scan(&m.Total, &m.Active, &m.Expired, &m.Revoked)
	return m, err
}
