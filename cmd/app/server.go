package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"socialhub/internal/config"
	"time"
)

const shutdownTimeout = 10 * time.Second

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Serve runs the API until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, cfg *config.Config) error {
	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	srv := newServer(cfg, a.Handler)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Сервер запущен", "addr", srv.Addr, "storage", cfg.StorageDriver, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Останавливаем сервер")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	return nil
}
