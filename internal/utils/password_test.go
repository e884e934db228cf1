package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secure123!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, h.Verify("Secure123!", hash))
	assert.False(t, h.Verify("wrong-password", hash))
}

func TestHasherSaltedOutputDiffers(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("Secure123!")
	require.NoError(t, err)
	h2, err := h.Hash("Secure123!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "bcrypt embeds a fresh salt per call")
	assert.True(t, h.Verify("Secure123!", h1))
	assert.True(t, h.Verify("Secure123!", h2))
}

func TestHasherVerifyCorruptHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	// Structurally invalid hash input is a mismatch, not a failure.
	assert.False(t, h.Verify("Secure123!", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("Secure123!", ""))
}

func TestHasherOutOfRangeCostFallsBack(t *testing.T) {
	t.Parallel()

	h := NewHasher(99)
	hash, err := h.Hash("Secure123!")
	require.NoError(t, err)
	assert.True(t, h.Verify("Secure123!", hash))
}

func TestGenerateRandomPassword(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	for _, length := range []int{4, 8, 12, 32} {
		pw, err := h.GenerateRandomPassword(length)
		require.NoError(t, err)
		assert.Len(t, pw, length)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, specialChars), "missing special in %q", pw)
	}
}

func TestGenerateRandomPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	// Below 4 there is no room for one slot per required class.
	pw, err := h.GenerateRandomPassword(1)
	require.NoError(t, err)
	assert.Len(t, pw, 4)
}

func TestGenerateRandomPasswordDefaultLengthIsRandom(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	a, err := h.GenerateRandomPassword(12)
	require.NoError(t, err)
	b, err := h.GenerateRandomPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
