package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// SQLite keeps records in a local database file.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path. A single
// connection is kept per process.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	s, err := NewSQLite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(db *sql.DB) (*SQLite, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS record (
	level		TEXT PRIMARY KEY,
	best_time	INTEGER NOT NULL
);`)
	if err != nil {
		return nil, classifySQLite(err)
	}
	return &SQLite{db: db}, nil
}

func classifySQLite(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen,
			sqlite3.ErrIoErr, sqlite3.ErrReadonly, sqlite3.ErrFull:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (s *SQLite) Best(ctx context.Context, level string) (int, bool, error) {
	var best int
	err := s.db.QueryRowContext(ctx,
		`SELECT best_time FROM record WHERE level = ?;`, level,
	).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, classifySQLite(err)
	}
	return best, true, nil
}

// Submit inserts the time or replaces a slower one. The comparison happens
// inside the upsert, so no row is touched when the time is not a record.
func (s *SQLite) Submit(ctx context.Context, level string, seconds int) (bool, error) {
	if err := validate(level, seconds); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
INSERT INTO record (level, best_time)
VALUES (?, ?)
ON CONFLICT(level)
DO UPDATE SET best_time = excluded.best_time
WHERE excluded.best_time < record.best_time;`,
		level, seconds)
	if err != nil {
		return false, classifySQLite(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classifySQLite(err)
	}
	return n > 0, nil
}

func (s *SQLite) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, best_time FROM record ORDER BY level;`)
	if err != nil {
		return nil, classifySQLite(err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Level, &e.BestSeconds); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry for level without checking if it existed.
func (s *SQLite) Delete(ctx context.Context, level string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM record WHERE level = ?;`, level)
	return classifySQLite(err)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLite)(nil)
