package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"foodorder/api"
	"foodorder/config"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/pkg/cache"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App Application
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	cache  cache.Cache
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully and releases the store
// and the cache.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// Close releases the database and the cache.
func (a *App) Close() {
	if err := a.cache.Close(); err != nil {
		logger.Warn("Failed to close cache", zap.Error(err))
	}
	if err := gormdb.Close(a.db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}

// Handler exposes the HTTP handler (used by tests).
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
