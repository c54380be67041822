package mongostore

import (
	"context"
	"fmt"
	"socialhub/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type notificationStore struct {
	coll *mongo.Collection
}

func (s *notificationStore) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = newID()
	}

	now := time.Now().UTC()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	return nil
}

func (s *notificationStore) ListByRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"to": userID})
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("ошибка при чтении уведомлений: %w", err)
	}

	return notifications, nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now().UTC()}}

	if _, err := s.coll.UpdateMany(ctx, bson.M{"to": userID}, update); err != nil {
		return fmt.Errorf("ошибка при отметке уведомлений: %w", err)
	}

	return nil
}

func (s *notificationStore) DeleteAllByRecipient(ctx context.Context, userID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"to": userID}); err != nil {
		return fmt.Errorf("ошибка при удалении уведомлений: %w", err)
	}

	return nil
}
