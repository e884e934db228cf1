package service

import (
	"errors"

	"github.com/aicode/auth-platform/internal/validator"
)

// Closed set of failure kinds surfaced by the services. Named outcomes
// propagate verbatim to the HTTP layer; anything unanticipated
// downstream (store I/O, hashing engine) collapses into one of the
// generic *Failed kinds so internal fault detail never reaches the
// client.
var (
	// ErrDuplicateEmail reports an email that is already registered.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two are merged so responses cannot be used to
	// enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDeactivated reports a correct login against a
	// deactivated account. Distinguishable from bad credentials since
	// it reveals nothing the caller does not already know.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrInvalidRefreshToken reports a refresh token whose signature,
	// store record, or revocation state makes it unusable.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRefreshTokenExpired reports a structurally valid but expired
	// refresh token.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrRegistrationFailed = errors.New("failed to process user registration")
	ErrLoginFailed        = errors.New("failed to complete login process")
	ErrRefreshFailed      = errors.New("failed to refresh token")
	ErrLogoutFailed       = errors.New("failed to logout user")
)

// ValidationError aggregates every field rule violated by a
// registration input. Handlers unpack it with errors.As and surface
// the list as data, not as a message.
type ValidationError struct {
	Fields []validator.FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }
