package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/aicode/auth-platform/internal/model"
)

// UserRepo persists user records in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,first_name,last_name,password_hash,is_active,email_verified,created_at,updated_at"

// UserUpdate carries the fields of a partial user update. Nil fields
// are left untouched.
type UserUpdate struct {
	Email         *string
	FirstName     *string
	LastName      *string
	PasswordHash  *string
	IsActive      *bool
	EmailVerified *bool
}

// Create inserts a user with a server-generated UUID and returns the
// stored record. Email is normalized before storage; the unique index
// on users.email is the correctness boundary for uniqueness, and a
// duplicate-key failure maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*model.User, error) {
	id := uuid.NewString()
	email = NormalizeEmail(email)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, first_name, last_name, password_hash) VALUES (?,?,?,?,?)",
		id, email, strings.TrimSpace(firstName), strings.TrimSpace(lastName), passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindByID fetches a user by id. Absent users yield (nil, nil).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// FindByEmail fetches a user by normalized email. Absent users yield (nil, nil).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", NormalizeEmail(email))
}

// Update applies a partial update and returns the fresh record, or
// (nil, nil) if the user does not exist.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate) (*model.User, error) {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	if upd.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, NormalizeEmail(*upd.Email))
	}
	if upd.FirstName != nil {
		sets = append(sets, "first_name=?")
		args = append(args, strings.TrimSpace(*upd.FirstName))
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name=?")
		args = append(args, strings.TrimSpace(*upd.LastName))
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *upd.PasswordHash)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if upd.EmailVerified != nil {
		sets = append(sets, "email_verified=?")
		args = append(args, *upd.EmailVerified)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	// The follow-up read reports nil for an absent user.
	return r.FindByID(ctx, id)
}

// Delete removes a user row. Reports whether a row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// FindActive returns all users with is_active set.
func (r *UserRepo) FindActive(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active=1 ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows.Scan, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) findOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var u model.User
	err := scanUser(r.DB.QueryRowContext(ctx, query, args...).Scan, &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUser(scan func(dest ...interface{}) error, u *model.User) error {
	return scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
}

// NormalizeEmail lowercases and trims an email so lookups and storage
// agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
