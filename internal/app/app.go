package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/records"
	"github.com/vancomm/minesweeper-engine/internal/sessions"
)

type App struct {
	logger   *slog.Logger
	addr     string
	basePath string
	sessions *sessions.Registry
	store    records.Store
	jwt      *config.JWT
	ws       *config.WebSocket
}

func New(
	logger *slog.Logger,
	registry *sessions.Registry,
	store records.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
) *App {
	app := &App{
		logger:   logger,
		addr:     config.Port(),
		basePath: config.BasePath(),
		sessions: registry,
		store:    store,
		jwt:      jwt,
		ws:       ws,
	}

	return app
}

// Start serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        a.addr,
		Handler:     a.Router(),
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.addr), slog.String("base_path", a.basePath))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		a.logger.Info("shutting down")
		return server.Shutdown(sctx)
	})
	return g.Wait()
}
