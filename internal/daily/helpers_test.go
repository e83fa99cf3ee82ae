package daily

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robalobadob/langle/assets"
	"github.com/robalobadob/langle/internal/catalog"
	"github.com/robalobadob/langle/internal/db"
)

var errUnavailable = errors.New("database is locked")

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Language{
		{Name: "JavaScript", Paradigm: []string{"Object-oriented"}, Typing: catalog.TypingDynamic, GarbageCollection: true, DesignedBy: "Brendan Eich", FirstAppeared: 1995, MainUseCase: "Web"},
		{Name: "Rust", Paradigm: []string{"Concurrent"}, Typing: catalog.TypingStatic, DesignedBy: "Graydon Hoare", FirstAppeared: 2010, MainUseCase: "Systems"},
		{Name: "Go", Paradigm: []string{"Concurrent"}, Typing: catalog.TypingStatic, GarbageCollection: true, DesignedBy: "Rob Pike", FirstAppeared: 2009, MainUseCase: "Systems"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func fixedCalendar(at time.Time) Calendar {
	return NewCalendar(time.UTC, func() time.Time { return at })
}

var day1 = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	conn, err := db.OpenMigrated(context.Background(), ":memory:", assets.Migrations())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSQLStore(conn)
}

// stores runs fn against both Store implementations.
func stores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, setupSQLStore(t)) })
}

// flakyStore fails the first failInserts inserts and optionally every read.
type flakyStore struct {
	Store
	failInserts int32
	failReads   bool
	inserts     atomic.Int32
}

func (f *flakyStore) ListPicks(ctx context.Context) ([]Pick, error) {
	if f.failReads {
		return nil, errUnavailable
	}
	return f.Store.ListPicks(ctx)
}

func (f *flakyStore) InsertPick(ctx context.Context, p Pick) (int64, error) {
	if n := f.inserts.Add(1); n <= f.failInserts {
		return 0, errUnavailable
	}
	return f.Store.InsertPick(ctx, p)
}

// racingStore lets a competing writer commit a pick just before our insert.
type racingStore struct {
	Store
	winner string
}

func (r *racingStore) InsertPick(ctx context.Context, p Pick) (int64, error) {
	if _, err := r.Store.InsertPick(ctx, Pick{LanguageName: r.winner, Day: p.Day, CreatedAt: p.CreatedAt}); err != nil {
		return 0, err
	}
	return r.Store.InsertPick(ctx, p)
}

// blindStore never sees existing tries, so only the unique index can reject a duplicate.
type blindStore struct{ Store }

func (b blindStore) ListTries(ctx context.Context, userID string) ([]Try, error) { return nil, nil }
