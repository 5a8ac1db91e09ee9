package service

import (
	"errors"
	"sync"

	"hospital-records/internal/models"
	"hospital-records/internal/repository"
)

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
	failErr error
}

func (f *fakeAuditStore) CreateAuditLog(userID *uint, action, department, details string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.entries = append(f.entries, models.AuditLog{
		ID:         uint(len(f.entries) + 1),
		UserID:     userID,
		Action:     action,
		Department: department,
		Details:    details,
	})
	return nil
}

func (f *fakeAuditStore) ListRecent(limit int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := []models.AuditLog{}
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func (f *fakeAuditStore) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeUserStore struct {
	users     map[string]*models.User
	tokens    map[string]*models.RefreshToken
	lookupErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (f *fakeUserStore) FindUserByUsername(username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) CreateRefreshToken(token *models.RefreshToken) error {
	for _, u := range f.users {
		if u.ID == token.UserID {
			token.User = *u
		}
	}
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeUserStore) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	t, ok := f.tokens[hash]
	if !ok || t.Revoked {
		return nil, repository.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (f *fakeUserStore) RevokeRefreshTokenByHash(hash string) error {
	if t, ok := f.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

var errStoreDown = errors.New("store down")
