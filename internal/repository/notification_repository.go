package repository

import (
	"context"
	"fmt"
	"socialhub/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	query := `
		INSERT INTO notifications (notification_id, from_user_id, to_user_id, type, read, created_at, updated_at)
		VALUES (:notification_id, :from_user_id, :to_user_id, :type, :read, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `
		SELECT notification_id, from_user_id, to_user_id, type, read, created_at, updated_at
		FROM notifications WHERE to_user_id = $1 ORDER BY seq
	`

	notifications := []models.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE, updated_at = NOW() WHERE to_user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("ошибка при отметке уведомлений: %w", err)
	}

	return nil
}

func (r *notificationRepository) DeleteAllByRecipient(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE to_user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении уведомлений: %w", err)
	}

	return nil
}
