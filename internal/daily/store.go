// internal/daily/store.go
//
// Persistence for daily picks and tries.
// The UNIQUE(day) and UNIQUE(user_id, day) indexes are the real guard against
// two picks per day or two tries per user per day; violations surface as ErrDuplicate.

package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

// Pick is the language chosen for one calendar day.
type Pick struct {
	ID           int64     `json:"id"`
	LanguageName string    `json:"languageName"`
	Day          string    `json:"day"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Try is a user's single outcome for one calendar day.
type Try struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Success   bool      `json:"success"`
	Day       string    `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the persistence contract used by the Picker and the Tracker.
// Records are insert-only.
type Store interface {
	ListPicks(ctx context.Context) ([]Pick, error)
	InsertPick(ctx context.Context, p Pick) (int64, error)
	ListTries(ctx context.Context, userID string) ([]Try, error)
	InsertTry(ctx context.Context, t Try) (int64, error)
}

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// SQLStore implements Store on SQLite.
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListPicks(ctx context.Context) ([]Pick, error) {
	query, args, err := qb.Select("id", "language_name", "day", "created_at").
		From("daily_picks").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	defer rows.Close()

	var out []Pick
	for rows.Next() {
		var (
			p       Pick
			created string
		)
		if err := rows.Scan(&p.ID, &p.LanguageName, &p.Day, &created); err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate picks: %w", err)
	}
	return out, nil
}

func (s *SQLStore) InsertPick(ctx context.Context, p Pick) (int64, error) {
	query, args, err := qb.Insert("daily_picks").
		Columns("language_name", "day", "created_at").
		Values(p.LanguageName, p.Day, p.CreatedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	return s.insert(ctx, "insert pick", query, args)
}

func (s *SQLStore) ListTries(ctx context.Context, userID string) ([]Try, error) {
	query, args, err := qb.Select("id", "user_id", "success", "day", "created_at").
		From("daily_tries").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tries: %w", err)
	}
	defer rows.Close()

	var out []Try
	for rows.Next() {
		var (
			t       Try
			created string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Success, &t.Day, &created); err != nil {
			return nil, fmt.Errorf("scan try: %w", err)
		}
		t.CreatedAt = parseTime(created)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tries: %w", err)
	}
	return out, nil
}

func (s *SQLStore) InsertTry(ctx context.Context, t Try) (int64, error) {
	query, args, err := qb.Insert("daily_tries").
		Columns("user_id", "success", "day", "created_at").
		Values(t.UserID, t.Success, t.Day, t.CreatedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	return s.insert(ctx, "insert try", query, args)
}

func (s *SQLStore) insert(ctx context.Context, op, query string, args []any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return id, nil
}

/**
 * isUniqueViolation reports whether err is SQLite rejecting a row on a
 * UNIQUE index or primary key, i.e. the record for that day already exists.
 */
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) &&
		(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

// parseTime reads RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
