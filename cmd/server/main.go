package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/sessions"
)

func run(ctx context.Context, logger *slog.Logger) error {
	if err := logging.SetupEngine(); err != nil {
		return fmt.Errorf("failed to set up engine log: %w", err)
	}

	recordsCfg, err := config.NewRecords()
	if err != nil {
		return fmt.Errorf("failed to read records config: %w", err)
	}

	sessionsCfg, err := config.NewSessions()
	if err != nil {
		return fmt.Errorf("failed to read sessions config: %w", err)
	}

	jwt, err := config.NewJWT(sessionsCfg.TTL)
	if err != nil {
		return fmt.Errorf("failed to read jwt config: %w", err)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return fmt.Errorf("failed to read ws config: %w", err)
	}

	store, err := app.OpenStore(ctx, logger, recordsCfg)
	if err != nil {
		return fmt.Errorf("failed to open %s record store: %w", recordsCfg.Driver, err)
	}
	defer store.Close()

	registry := sessions.New(
		logger, sessionsCfg.Capacity, sessionsCfg.TTL, mines.WithRecordStore(store),
	)
	defer registry.Close()

	return app.New(logger, registry, store, jwt, ws).Start(ctx)
}

func main() {
	logger := logging.Default()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}
