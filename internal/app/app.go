// Package app wires configuration, the database handle and the HTTP server
// into the running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"posts-api/internal/config"
	"posts-api/internal/db"
	httpx "posts-api/internal/http"

	charmlog "github.com/charmbracelet/log"
)

// Run connects to the database, resets the posts table and serves HTTP until
// ctx is cancelled. Every startup failure is returned before the listener is
// bound.
func Run(ctx context.Context, cfg *config.Config, log *charmlog.Logger) error {
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("database connected")
	return run(ctx, cfg, db.NewStore(pool), log)
}

// run resets the table behind store and serves it. The port is bound only
// after the reset succeeds.
func run(ctx context.Context, cfg *config.Config, store *db.Store, log *charmlog.Logger) error {
	if err := store.Reset(ctx); err != nil {
		return err
	}
	log.Info("posts table reset", "rows", 2)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("app: listen: %w", err)
	}
	srv := httpx.NewServer(store, log)
	log.Infof("HTTP server running on http://localhost:%d", cfg.Port)
	return Serve(ctx, ln, srv.R, cfg.ShutdownTimeout, log)
}

// Serve serves h on ln until ctx is done, then shuts down within timeout.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, timeout time.Duration, log *charmlog.Logger) error {
	srv := &http.Server{Handler: h}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	<-errCh
	return nil
}
