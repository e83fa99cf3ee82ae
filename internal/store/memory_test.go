package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/langle/internal/game"
)

func TestMemorySaveGet(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()
	s := game.NewSession(game.Options{ID: "abc"})

	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := m.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}
	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()
	_ = m.Save(ctx, game.NewSession(game.Options{ID: "old"}))

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound for an expired session", err)
	}
	if n := m.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after sweep", m.Len())
	}
}
