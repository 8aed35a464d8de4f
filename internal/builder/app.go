package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/career-agent/internal/pkg/cache"
	"github.com/futig/career-agent/internal/telegram"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server *http.Server
	store  cache.Store
	logger *zap.Logger
}

// Run serves HTTP until the process is signalled or the server fails.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.closeStore()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// Logger is the process logger; callers sync it on exit.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.closeStore()

	a.logger.Info("Application stopped")
	return err
}

func (a *App) closeStore() {
	a.logger.Info("Closing generation cache")
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close generation cache", zap.Error(err))
	}
}

// BotApp runs the Telegram bot.
type BotApp struct {
	bot    telegram.Bot
	stores []cache.Store
	logger *zap.Logger
}

// Run polls for updates until the process is signalled.
func (a *BotApp) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.bot.Start(ctx); err != nil {
		a.closeStores()
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	err := a.bot.Stop()
	if err != nil {
		a.logger.Error("Bot shutdown error", zap.Error(err))
	}

	a.closeStores()
	a.logger.Info("Telegram bot stopped")
	return err
}

func (a *BotApp) Logger() *zap.Logger {
	return a.logger
}

func (a *BotApp) closeStores() {
	for _, s := range a.stores {
		if err := s.Close(); err != nil {
			a.logger.Warn("Failed to close cache", zap.Error(err))
		}
	}
}
