package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"socialhub/internal/config"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

type DB struct {
	*sqlx.DB
}

func dataSourceName(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

func ConnectDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	slog.Info("Подключаемся к БД", "host", cfg.DB.DbHOST, "dbname", cfg.DB.DbNAME)

	db, err := sqlx.ConnectContext(ctx, "postgres", dataSourceName(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	slog.Info("Успешное подключение к PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies every embedded migration in file name order.
// Each file is idempotent.
func (db *DB) RunMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("ошибка при поиске файлов миграций: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграций %s: %w", name, err)
		}

		slog.Info("Применяем миграции", "file", name)

		if _, err := db.ExecContext(ctx, string(migrationSQL)); err != nil {
			return fmt.Errorf("ошибка при выполнении миграций %s: %w", name, err)
		}
	}

	slog.Info("Миграции успешно применены", "count", len(names))
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}

	return db.PingContext(ctx)
}
