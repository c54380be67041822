package service

import (
	"context"
	"fmt"
	"socialhub/internal/models"
	"socialhub/internal/repository"
)

type NotificationService interface {
	Notify(ctx context.Context, from, to string, kind models.NotificationType) error
	ListAndMarkRead(ctx context.Context, userID string) ([]models.NotificationView, error)
	DeleteAll(ctx context.Context, userID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *notificationService) Notify(ctx context.Context, from, to string, kind models.NotificationType) error {
	notification := &models.Notification{
		From: from,
		To:   to,
		Type: kind,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("ошибка при отправке уведомления %s: %w", kind, err)
	}

	return nil
}

// ListAndMarkRead returns the inbox as it was before marking everything read.
func (s *notificationService) ListAndMarkRead(ctx context.Context, userID string) ([]models.NotificationView, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		senderIDs = append(senderIDs, n.From)
	}

	senders, err := s.userRepo.GetUsersByIDs(ctx, models.NewIDSet(senderIDs...).Slice())
	if err != nil {
		return nil, err
	}
	byID := indexUsers(senders)

	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, models.NewNotificationView(n, byID[n.From]))
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}

	return views, nil
}

func (s *notificationService) DeleteAll(ctx context.Context, userID string) error {
	return s.notificationRepo.DeleteAllByRecipient(ctx, userID)
}
