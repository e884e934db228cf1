// Package repository provides thin data-access types over *sql.DB for
// users and refresh tokens. Sentinel errors defined here let higher
// layers distinguish failure scenarios without string matching.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update collides with
// the unique index on users.email. The unique index, not any
// check-then-insert in the service layer, is what actually enforces
// uniqueness under concurrency.
var ErrEmailExists = errors.New("email already exists")
