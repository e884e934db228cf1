// Package queue defines the auth event payloads exchanged over the
// message broker, the publisher that emits them, and the background
// consumer that turns them into an audit trail.
package queue

// Auth event types published to the auth.events queue.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventTokensRevoked  = "tokens.revoked"
)

// AuthEvent is published after a successful registration, login, or
// bulk revocation. It carries enough information for downstream
// consumers to audit or notify without querying the primary database.
// No secrets or token material ever travel through the broker.
type AuthEvent struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	OccurredAt string `json:"occurred_at"`
}
