package model

import "time"

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  IsRevoked – whether the token was revoked. Once set it is never
//              cleared; revoked rows are excluded from validity
//              checks until the cleanup sweep deletes them.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64    // refresh_tokens.id
	UserID    string    // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash
	ExpiresAt time.Time // refresh_tokens.expires_at
	IsRevoked bool      // refresh_tokens.is_revoked
	CreatedAt time.Time // refresh_tokens.created_at
}

// Valid reports whether the token may still be redeemed: not revoked
// and not past its expiry at the given instant.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.IsRevoked && t.ExpiresAt.After(now)
}
