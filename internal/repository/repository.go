package repository

import (
	"context"
	"errors"
	"socialhub/internal/models"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("запись не найдена")
	ErrDuplicate = errors.New("запись уже существует")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	AddFollow(ctx context.Context, followerID, followeeID string) error
	RemoveFollow(ctx context.Context, followerID, followeeID string) error
	AddLikedPost(ctx context.Context, userID, postID string) error
	RemoveLikedPost(ctx context.Context, userID, postID string) error
	SampleUsers(ctx context.Context, excludeIDs []string, size int) ([]models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Delete(ctx context.Context, postID string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, comment *models.Comment) error
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByUsers(ctx context.Context, userIDs []string) ([]models.Post, error)
	ListByIDs(ctx context.Context, postIDs []string) ([]models.Post, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteAllByRecipient(ctx context.Context, userID string) error
}

type HealthRepository interface {
	Ping(ctx context.Context) error
	Driver() string
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Notification NotificationRepository
	Health       HealthRepository
}

// NewRepository builds the Postgres-backed repositories.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Notification: NewNotificationRepository(db),
		Health:       NewHealthRepository(db),
	}
}
