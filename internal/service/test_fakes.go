package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/repository"
)

// fakeUserStore is a test-only in-memory UserStore with error fields
// for behavior injection.
type fakeUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	nextID  int
	findErr error
	saveErr error
	// blindFind makes FindByEmail report no match, simulating the gap
	// between a stale pre-check and the store's unique constraint.
	blindFind bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.byID {
		if u.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	f.nextID++
	now := time.Now().UTC()
	u := &model.User{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.byID[u.ID] = u
	return cloneUser(u), nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return cloneUser(f.byID[id]), nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.blindFind {
		return nil, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(ctx context.Context, id string, upd repository.UserUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if upd.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.EmailVerified != nil {
		u.EmailVerified = *upd.EmailVerified
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeUserStore) Count(ctx context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.byID)), nil
}

func (f *fakeUserStore) FindActive(ctx context.Context) ([]model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []model.User
	for _, u := range f.byID {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

// deactivate flips is_active directly, bypassing the service API.
func (f *fakeUserStore) deactivate(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.IsActive = false
	}
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// fakeTokenStore is a test-only in-memory TokenStore keyed by raw
// token value, mirroring the validity rules of the real repository.
type fakeTokenStore struct {
	mu      sync.RWMutex
	byToken map[string]*model.RefreshToken
	nextID  uint64
	saveErr error
	findErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byToken: make(map[string]*model.RefreshToken)}
}

func (f *fakeTokenStore) Save(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if expiresAt.IsZero() {
		expiresAt = time.Now().UTC().Add(repository.DefaultRefreshTTL)
	}
	f.nextID++
	f.byToken[token] = &model.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (f *fakeTokenStore) Find(ctx context.Context, token string) (*model.RefreshToken, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.byToken[token]
	if !ok || !t.Valid(time.Now().UTC()) {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeTokenStore) Revoke(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byToken[token]
	if !ok || t.IsRevoked {
		return false, nil
	}
	t.IsRevoked = true
	return true, nil
}

func (f *fakeTokenStore) RevokeAll(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, t := range f.byToken {
		if t.UserID == userID && !t.IsRevoked {
			t.IsRevoked = true
			n++
		}
	}
	return n, nil
}

func (f *fakeTokenStore) CleanupExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	var n int64
	for raw, t := range f.byToken {
		if t.IsRevoked || !t.ExpiresAt.After(now) {
			delete(f.byToken, raw)
			n++
		}
	}
	return n, nil
}

func (f *fakeTokenStore) CountActive(ctx context.Context, userID string) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	now := time.Now().UTC()
	var n int64
	for _, t := range f.byToken {
		if t.UserID == userID && t.Valid(now) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTokenStore) Metrics(ctx context.Context) (repository.TokenMetrics, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	now := time.Now().UTC()
	var m repository.TokenMetrics
	for _, t := range f.byToken {
		m.Total++
		switch {
		case t.IsRevoked:
			m.Revoked++
		case t.ExpiresAt.After(now):
			m.Active++
		default:
			m.Expired++
		}
	}
	return m, nil
}
