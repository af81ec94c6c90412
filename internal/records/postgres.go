package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps records in the "record" table created by the migrations in
// this package.
type Postgres struct {
	db    DBTX
	close func()
}

func NewPostgres(db DBTX) *Postgres {
	p := &Postgres{db: db}
	if c, ok := db.(interface{ Close() }); ok {
		p.close = c.Close
	}
	return p
}

func classifyPostgres(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsInsufficientResources(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code) ||
			pgErr.Code == pgerrcode.UndefinedTable {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (p *Postgres) Best(ctx context.Context, level string) (int, bool, error) {
	var best int
	err := p.db.QueryRow(ctx,
		"SELECT best_time FROM record WHERE level = $1", level,
	).Scan(&best)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, classifyPostgres(err)
	}
	return best, true, nil
}

func (p *Postgres) Submit(ctx context.Context, level string, seconds int) (bool, error) {
	if err := validate(level, seconds); err != nil {
		return false, err
	}
	tag, err := p.db.Exec(ctx, `
		INSERT INTO record (level, best_time)
		VALUES (@level, @best_time)
		ON CONFLICT (level)
		DO UPDATE SET best_time = EXCLUDED.best_time, updated_at = now()
		WHERE EXCLUDED.best_time < record.best_time`,
		pgx.NamedArgs{
			"level":     level,
			"best_time": seconds,
		})
	if err != nil {
		return false, classifyPostgres(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) All(ctx context.Context) ([]Entry, error) {
	rows, err := p.db.Query(ctx,
		"SELECT level, best_time FROM record ORDER BY level")
	if err != nil {
		return nil, classifyPostgres(err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, classifyPostgres(err)
	}
	return entries, nil
}

func (p *Postgres) Delete(ctx context.Context, level string) error {
	_, err := p.db.Exec(ctx, "DELETE FROM record WHERE level = $1", level)
	if err != nil {
		return classifyPostgres(err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

var _ Store = (*Postgres)(nil)
