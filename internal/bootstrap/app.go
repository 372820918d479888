package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/edudigital/portal/internal/infra/config"
	"github.com/edudigital/portal/internal/infra/scheduler"
)

// App encapsulates the HTTP server and the snapshot refresh job.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	refresher *scheduler.Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, refresher *scheduler.Scheduler) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, refresher: refresher}
}

// Run starts the HTTP server, and the refresh schedule when enabled, and
// blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	jobCtx, stopJobs := context.WithCancel(ctx)
	var jobs sync.WaitGroup
	defer func() {
		stopJobs()
		jobs.Wait()
	}()
	if a.cfg.Refresh.Enabled && a.refresher != nil {
		jobs.Add(1)
		go func() {
			defer jobs.Done()
			a.logger.Info("video snapshot refresh scheduled", "schedule", a.cfg.Refresh.Schedule)
			a.refresher.Run(jobCtx)
		}()
	}

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// RefreshOnce publishes a fresh video snapshot without starting the server.
func (a *App) RefreshOnce(ctx context.Context) error {
	if a.refresher == nil {
		return errors.New("refresh job is not configured")
	}
	return a.refresher.RunOnce(ctx)
}
