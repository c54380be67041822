package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// addToArray appends value to a TEXT[] column unless it is already there.
// table, idColumn and column are always package constants.
func addToArray(ctx context.Context, db *sqlx.DB, table, idColumn, column, rowID, value string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = array_append(%s, $1::text), updated_at = NOW() WHERE %s = $2 AND NOT ($1::text = ANY(%s))`,
		table, column, column, idColumn, column,
	)

	if _, err := db.ExecContext(ctx, query, value, rowID); err != nil {
		return fmt.Errorf("ошибка при добавлении в %s.%s: %w", table, column, err)
	}

	return nil
}

// removeFromArray drops every occurrence of value from a TEXT[] column.
func removeFromArray(ctx context.Context, db *sqlx.DB, table, idColumn, column, rowID, value string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = array_remove(%s, $1::text), updated_at = NOW() WHERE %s = $2`,
		table, column, column, idColumn,
	)

	if _, err := db.ExecContext(ctx, query, value, rowID); err != nil {
		return fmt.Errorf("ошибка при удалении из %s.%s: %w", table, column, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
