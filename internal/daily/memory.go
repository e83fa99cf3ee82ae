// internal/daily/memory.go
//
// In-memory implementation of the daily Store.
//
// Characteristics:
//   - Same uniqueness rules as the SQL tables: one pick per day,
//     one try per user per day, violations reported as ErrDuplicate.
//   - Concurrency-safe via RWMutex.
//   - State is lost when the process restarts.

package daily

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store with the same uniqueness rules as SQLStore.
// State is lost when the process restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	picks   []Pick
	tries   []Try
	pickDay map[string]struct{}
	tryKey  map[string]struct{} // user_id|day
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pickDay: make(map[string]struct{}),
		tryKey:  make(map[string]struct{}),
	}
}

func (m *MemoryStore) ListPicks(ctx context.Context) ([]Pick, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Pick, len(m.picks))
	copy(out, m.picks)
	return out, nil
}

func (m *MemoryStore) InsertPick(ctx context.Context, p Pick) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pickDay[p.Day]; ok {
		return 0, fmt.Errorf("insert pick: %w", ErrDuplicate)
	}
	m.pickDay[p.Day] = struct{}{}
	p.ID = int64(len(m.picks) + 1)
	m.picks = append(m.picks, p)
	return p.ID, nil
}

func (m *MemoryStore) ListTries(ctx context.Context, userID string) ([]Try, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Try
	for _, t := range m.tries {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemoryStore) InsertTry(ctx context.Context, t Try) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := t.UserID + "|" + t.Day
	if _, ok := m.tryKey[key]; ok {
		return 0, fmt.Errorf("insert try: %w", ErrDuplicate)
	}
	m.tryKey[key] = struct{}{}
	t.ID = int64(len(m.tries) + 1)
	m.tries = append(m.tries, t)
	return t.ID, nil
}
