package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/records"
)

// OpenStore opens the record store selected by cfg. Postgres is migrated
// before use.
func OpenStore(ctx context.Context, logger *slog.Logger, cfg *config.Records) (records.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("records are kept in memory and lost on exit")
		return records.NewMemory(), nil
	case config.DriverPostgres:
		pool, migrator, err := database.ConnectAndMigrate(ctx, records.Migrations)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		defer migrator.Close()
		if version, dirty, err := migrator.Version(); err == nil {
			logger.Debug("records schema", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		}
		return records.NewPostgres(pool), nil
	case config.DriverSQLite:
		store, err := records.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("records file", slog.String("path", cfg.SQLitePath))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown records driver %q", cfg.Driver)
	}
}
