// internal/users/memory.go
//
// In-memory user store with the same rules as the users table:
// unique IDs and case-insensitively unique usernames.
// State is lost when the process restarts.

package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore keeps users in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]User
	byName map[string]string // lower(username) -> id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]User), byName: make(map[string]string)}
}

func (m *MemoryStore) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Username)
	if _, ok := m.byName[key]; ok {
		return ErrUsernameTaken
	}
	if _, ok := m.byID[u.ID]; ok {
		return fmt.Errorf("insert user: duplicate id %q", u.ID)
	}
	m.byID[u.ID] = u
	m.byName[key] = u.ID
	return nil
}

func (m *MemoryStore) ByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) ByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[strings.ToLower(username)]
	if !ok {
		return User{}, ErrNotFound
	}
	return m.byID[id], nil
}
