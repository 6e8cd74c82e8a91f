package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sales-dashboard/internal/config"
)

const hookTimeout = 10 * time.Second

// GracefulServer runs an http.Server until the context is cancelled or the
// process receives SIGINT or SIGTERM, then drains it and runs the shutdown hooks.
type GracefulServer struct {
	server *http.Server
	logger *slog.Logger
	cfg    config.ServerConfig

	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, cfg config.ServerConfig) *GracefulServer {
	return &GracefulServer{
		server: server,
		logger: logger,
		cfg:    cfg,
	}
}

// RegisterShutdownHook adds fn to the hooks run concurrently after the HTTP
// server stops accepting requests.
func (gs *GracefulServer) RegisterShutdownHook(fn func(ctx context.Context) error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.hooks = append(gs.hooks, fn)
}

func (gs *GracefulServer) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		gs.logger.Info("starting server",
			"addr", gs.server.Addr,
			"read_timeout", gs.cfg.ReadTimeout,
			"write_timeout", gs.cfg.WriteTimeout,
		)
		serverErrors <- gs.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		gs.logger.Info("shutdown requested", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gs.cfg.ShutdownTimeout)
		defer cancel()

		return gs.Shutdown(shutdownCtx)
	}
}

// Shutdown stops the HTTP server and then runs every registered hook. It
// returns the joined errors of the server and the hooks.
func (gs *GracefulServer) Shutdown(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown", "timeout", gs.cfg.ShutdownTimeout)

	var errs []error
	if err := gs.server.Shutdown(ctx); err != nil {
		gs.logger.Error("HTTP server shutdown failed", "error", err)
		errs = append(errs, fmt.Errorf("HTTP server shutdown failed: %w", err))
	} else {
		gs.logger.Info("HTTP server stopped gracefully")
	}

	gs.mu.Lock()
	hooks := append([]func(context.Context) error(nil), gs.hooks...)
	gs.mu.Unlock()

	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
	)
	for i, hook := range hooks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
			defer cancel()

			if err := hook(hookCtx); err != nil {
				gs.logger.Error("shutdown hook failed", "hook_index", i, "error", err)
				errMu.Lock()
				errs = append(errs, fmt.Errorf("shutdown hook %d failed: %w", i, err))
				errMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	gs.logger.Info("graceful shutdown completed")
	return nil
}
