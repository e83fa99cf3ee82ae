// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Sessions are keyed by their ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sessions older than the configured TTL are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/langle/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store holds game sessions between requests.
type Store interface {
	Save(ctx context.Context, s *game.Session) error
	Get(ctx context.Context, id string) (*game.Session, error)
}

// Memory is a map-backed Store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemory constructs an empty Memory. A ttl of zero keeps sessions forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{sessions: make(map[string]*game.Session), ttl: ttl, now: time.Now}
}

// Save adds or replaces the session.
func (m *Memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

// Get looks up a live session.
func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return nil, ErrNotFound
	}
	return s, nil
}

// Len reports how many sessions are held, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Memory) expired(s *game.Session) bool {
	return m.ttl > 0 && m.now().Sub(s.CreatedAt()) > m.ttl
}
