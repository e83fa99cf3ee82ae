// internal/users/sql.go
//
// SQLite-backed user store.
// Responsibilities:
//   - Insert and look up rows of the users table with squirrel-built queries.
//   - Report the case-insensitive username index as ErrUsernameTaken.
//
// Timestamps are stored as RFC3339 text.

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// SQLStore keeps users in the users table.
type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, u User) error {
	query, args, err := qb.Insert("users").
		Columns("id", "username", "password_hash", "created_at").
		Values(u.ID, u.Username, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) ByID(ctx context.Context, id string) (User, error) {
	return s.one(ctx, squirrel.Eq{"id": id})
}

func (s *SQLStore) ByUsername(ctx context.Context, username string) (User, error) {
	return s.one(ctx, squirrel.Expr("lower(username) = lower(?)", username))
}

func (s *SQLStore) one(ctx context.Context, where squirrel.Sqlizer) (User, error) {
	query, args, err := qb.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return User{}, fmt.Errorf("build query: %w", err)
	}
	var (
		u       User
		created string
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return u, nil
}

// isUniqueViolation matches the lower(username) index only; a primary key
// clash or a NOT NULL failure is a different error.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
