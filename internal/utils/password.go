package utils

import (
	"crypto/rand"
	"errors"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashing is returned when the bcrypt transform itself fails,
// e.g. because the cost is outside bcrypt's supported range.
var ErrHashing = errors.New("failed to hash password")

// Character classes used by GenerateRandomPassword. Every generated
// password contains at least one character from each class.
const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"
	allChars     = lowerChars + upperChars + digitChars + specialChars
)

// Hasher performs one-way password hashing with a configurable bcrypt
// cost. The cost is fixed at construction; a fresh random salt is drawn
// by bcrypt on every Hash call, so hashing the same input twice yields
// different outputs.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the bcrypt default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", ErrHashing
	}
	return string(b), nil
}

// Verify compares a bcrypt hash against a plain password. A mismatch or
// a structurally invalid hash reports false rather than an error.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateRandomPassword produces a random password of the requested
// length containing at least one lowercase letter, one uppercase
// letter, one digit, and one special character. Lengths below 4 are
// raised to 4 so every class fits. Randomness comes from crypto/rand.
func (h *Hasher) GenerateRandomPassword(length int) (string, error) {
	if length < 4 {
		length = 4
	}

	chars := make([]byte, 0, length)
	for _, class := range []string{lowerChars, upperChars, digitChars, specialChars} {
		c, err := randByte(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randByte(allChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates shuffle so the required classes are not always at
	// fixed positions.
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

// randByte picks a single uniformly random byte from charset.
func randByte(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
