// Package memory provides in-memory store implementations, used for
// tests and ephemeral runs without a data directory.
package memory

import (
	"context"
	"sync"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	byName  map[string]domain.User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{byName: make(map[string]domain.User)}
}

// Create stores a new user.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[user.Username]; ok {
		return domain.ErrAlreadyExists
	}
	s.byName[user.Username] = *user
	return nil
}

// GetByUsername retrieves a user by login name.
func (s *UserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}
