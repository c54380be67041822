package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"socialhub/internal/config"
	"socialhub/internal/database"
	handlers "socialhub/internal/handler"
	"socialhub/internal/middleware"
	"socialhub/internal/repository"
	"socialhub/internal/repository/mongostore"
	"socialhub/internal/service"
	"socialhub/internal/storage"
)

// App holds the wired HTTP handler together with the connections it owns.
type App struct {
	Cfg      *config.Config
	Handler  http.Handler
	Services *service.Service

	closers []func(context.Context) error
}

// New connects every backing store and builds the request pipeline.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY не установлен в .env файле")
	}

	a := &App{Cfg: cfg}

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	revoker, closeRevoker, err := storage.NewTokenRevoker(ctx, cfg.Redis)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return closeRevoker() })

	a.Services = service.NewService(repo, cfg, minioClient, revoker)
	a.Handler = newHTTPHandler(handlers.NewHandlers(a.Services, cfg), a.Services.Auth)

	return a, nil
}

func newHTTPHandler(h *handlers.Handlers, auth service.AuthService) http.Handler {
	router := handlers.NewRouter(h, middleware.SessionGuard(auth))

	return middleware.Chain(
		router,
		middleware.RecoverMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)
}

// openRepository connects the configured storage driver and prepares its
// schema: tables for Postgres, indexes for Mongo.
func (a *App) openRepository(ctx context.Context) (*repository.Repository, error) {
	switch a.Cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.ConnectDB(ctx, a.Cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.CloseDB() })

		if err := db.RunMigrations(ctx); err != nil {
			return nil, err
		}

		return repository.NewRepository(db.DB), nil

	case config.DriverMongo:
		mdb, err := database.ConnectMongo(ctx, a.Cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, mdb.Close)

		if err := mdb.EnsureIndexes(ctx); err != nil {
			return nil, err
		}

		return mongostore.NewRepository(mdb.Database), nil

	default:
		return nil, fmt.Errorf("неизвестный STORAGE_DRIVER %q", a.Cfg.StorageDriver)
	}
}

// Close releases connections in reverse order of opening.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			slog.Error("Ошибка при закрытии соединения", "error", err)
		}
	}
	a.closers = nil
}

// Migrate prepares the schema of the configured storage and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	a := &App{Cfg: cfg}
	defer a.Close(ctx)

	if _, err := a.openRepository(ctx); err != nil {
		return err
	}

	slog.Info("Схема хранилища готова", "driver", cfg.StorageDriver)
	return nil
}
