package repository

import (
	"context"
	"errors"
	"fmt"
	"socialhub/internal/config"

	"github.com/jmoiron/sqlx"
)

var errSchemaMissing = errors.New("схема базы данных не применена")

type healthRepository struct {
	db *sqlx.DB
}

func NewHealthRepository(db *sqlx.DB) HealthRepository {
	return &healthRepository{db: db}
}

// Ping checks the connection and that migrations have created the tables.
func (r *healthRepository) Ping(ctx context.Context) error {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN ('users', 'posts', 'comments', 'notifications')
	`)
	if err != nil {
		return fmt.Errorf("ошибка при проверке базы данных: %w", err)
	}

	if count < 4 {
		return errSchemaMissing
	}

	return nil
}

func (r *healthRepository) Driver() string {
	return config.DriverPostgres
}
