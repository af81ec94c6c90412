// Package records keeps the best completion time for every level. One entry
// exists per level and it is only ever replaced by a strictly faster time.
package records

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed migrations/*.sql
var Migrations embed.FS

var (
	ErrUnavailable  = errors.New("record store unavailable")
	ErrInvalidLevel = errors.New("invalid level name")
	ErrInvalidTime  = errors.New("invalid completion time")
)

type Entry struct {
	Level       string `json:"level" db:"level"`
	BestSeconds int    `json:"best_time" db:"best_time"`
}

// Store is implemented by every backend in this package.
type Store interface {
	Best(ctx context.Context, level string) (seconds int, ok bool, err error)
	Submit(ctx context.Context, level string, seconds int) (newRecord bool, err error)
	All(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, level string) error
	Close() error
}

func validate(level string, seconds int) error {
	if strings.TrimSpace(level) == "" {
		return ErrInvalidLevel
	}
	if seconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTime, seconds)
	}
	return nil
}
