package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errors returned by TokenCodec operations. Callers branch on these
// with errors.Is; verification never exposes raw jwt library errors.
var (
	// ErrSecretsNotConfigured is returned when the codec is built
	// without both signing secrets. This is fatal at startup, not a
	// per-request condition.
	ErrSecretsNotConfigured = errors.New("jwt secrets are not configured")
	// ErrInvalidToken covers bad signatures, malformed tokens, and
	// issuer/audience mismatches.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for structurally valid but expired tokens.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidTokenType is returned when a refresh token is presented
	// where an access token is expected, or vice versa.
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Token type tags carried in the claims. Access and refresh tokens are
// signed with different secrets, so a leaked access key cannot forge
// refresh tokens; the tag blocks substitution within the same key.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the payload carried by both access and refresh tokens:
// standard registered claims plus the user identity and the token type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
}

// TokenPair bundles a short-lived access token and a long-lived
// refresh token, with their absolute expiry times.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenCodec creates and verifies signed, expiring, typed JWTs. It is
// stateless: all parameters are fixed at construction from the server
// config. Tokens issued under a different secret, issuer, or audience
// are rejected at verification time.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string
}

// NewTokenCodec builds a TokenCodec. Both secrets are required;
// missing secrets yield ErrSecretsNotConfigured.
func NewTokenCodec(accessSecret, refreshSecret, issuer, audience string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrSecretsNotConfigured
	}
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
		audience:      audience,
	}, nil
}

// IssuePair signs a fresh access/refresh token pair for the user.
func (tc *TokenCodec) IssuePair(userID, email string) (TokenPair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(tc.accessTTL)
	refreshExp := now.Add(tc.refreshTTL)

	access, err := tc.sign(userID, email, TokenTypeAccess, tc.accessSecret, now, accessExp)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := tc.sign(userID, email, TokenTypeRefresh, tc.refreshSecret, now, refreshExp)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// RefreshTTL reports the configured refresh token lifetime so callers
// can persist the matching expiry alongside the token.
func (tc *TokenCodec) RefreshTTL() time.Duration { return tc.refreshTTL }

// VerifyAccess validates an access token and returns its claims.
func (tc *TokenCodec) VerifyAccess(token string) (*Claims, error) {
	return tc.verify(token, TokenTypeAccess, tc.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (tc *TokenCodec) VerifyRefresh(token string) (*Claims, error) {
	return tc.verify(token, TokenTypeRefresh, tc.refreshSecret)
}

func (tc *TokenCodec) sign(userID, email, tokenType string, secret []byte, now, exp time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			Audience:  jwt.ClaimStrings{tc.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			// Unique per token: two logins in the same second must not
			// mint identical strings, or the token store's unique
			// index would reject the second one.
			ID: uuid.NewString(),
		},
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (tc *TokenCodec) verify(token, wantType string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuer(tc.issuer), jwt.WithAudience(tc.audience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// ExtractFromHeader pulls the bearer token out of an Authorization
// header value. It never fails: a missing header, a scheme other than
// "Bearer", or a missing token segment all yield the empty string.
// Extra whitespace around the segments is tolerated.
func ExtractFromHeader(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a
// hex string. Only the hash is stored in the database, so stolen rows
// cannot be replayed as live refresh tokens.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
