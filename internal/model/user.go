package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The PasswordHash field is never serialized into an
// outward-facing response; handlers define separate response types
// with appropriate JSON tags.
//
// Fields:
//  ID            – primary key, server-generated UUID, immutable.
//  Email         – unique email address, stored lowercased and trimmed.
//  FirstName     – given name.
//  LastName      – family name.
//  PasswordHash  – bcrypt hashed password, never empty for a persisted user.
//  IsActive      – whether the account may log in.
//  EmailVerified – whether the address was confirmed (persisted, not enforced).
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            string    // users.id
	Email         string    // users.email
	FirstName     string    // users.first_name
	LastName      string    // users.last_name
	PasswordHash  string    // users.password_hash
	IsActive      bool      // users.is_active
	EmailVerified bool      // users.email_verified
	CreatedAt     time.Time // users.created_at
	UpdatedAt     time.Time // users.updated_at
}
