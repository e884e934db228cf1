package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "aicode-platform"
	testAudience = "aicode-users"
)

func newTestCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("access-secret", "refresh-secret", testIssuer, testAudience, accessTTL, refreshTTL)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodecRequiresSecrets(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec("", "refresh", testIssuer, testAudience, time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrSecretsNotConfigured)

	_, err = NewTokenCodec("access", "", testIssuer, testAudience, time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrSecretsNotConfigured)
}

func TestIssuePairRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 7*24*time.Hour)

	pair, err := codec.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := codec.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, "a@b.com", access.Email)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := codec.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 7*24*time.Hour)
	pair, err := codec.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	// The two kinds are signed with different secrets, so presenting
	// one where the other is expected fails the signature check before
	// the type tag is even consulted.
	_, err = codec.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
	_, err = codec.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyRejectsTypeConfusionUnderSharedSecret(t *testing.T) {
	t.Parallel()

	// With identical secrets only the type tag stands between the two
	// kinds; it must be enough on its own.
	codec, err := NewTokenCodec("shared", "shared", testIssuer, testAudience, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	pair, err := codec.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = codec.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, -time.Minute, -time.Minute)
	pair, err := codec.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = codec.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsForeignDeployment(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 7*24*time.Hour)
	pair, err := codec.IssuePair("user-1", "a@b.com")
	require.NoError(t, err)

	// Different secret.
	other, err := NewTokenCodec("other-access", "other-refresh", testIssuer, testAudience, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	_, err = other.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Same secrets, different issuer/audience.
	foreign, err := NewTokenCodec("access-secret", "refresh-secret", "someone-else", "their-users", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	_, err = foreign.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 7*24*time.Hour)
	_, err := codec.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = codec.VerifyRefresh("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractFromHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"scheme with trailing space", "Bearer   ", ""},
		{"valid", "Bearer tok-123", "tok-123"},
		{"extra whitespace", "  Bearer   tok-123  ", "tok-123"},
		{"lowercase scheme", "bearer tok-123", ""},
		{"too many segments", "Bearer tok-123 extra", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractFromHeader(tc.header))
		})
	}
}

func TestHashRefreshRaw(t *testing.T) {
	t.Parallel()

	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	h3 := HashRefreshRaw("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // sha256 hex
}
