package service

import (
	"context"
	"errors"
	"socialhub/internal/config"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	User         UserService
	Post         PostService
	Auth         AuthService
	Notification NotificationService
	Health       HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, media storage.MediaStorage, revoker storage.TokenRevoker) *Service {
	validate := validator.New()
	hasher := NewPasswordHasher(0)
	tokens := NewTokenService(cfg.JWTSecretKey, cfg.TokenDuration)
	notifications := NewNotificationService(rep.Notification, rep.User)

	return &Service{
		User:         NewUserService(rep.User, notifications, media, hasher, validate),
		Post:         NewPostService(rep.Post, rep.User, notifications, media),
		Auth:         NewAuthService(rep.User, tokens, hasher, revoker, validate),
		Notification: notifications,
		Health:       NewHealthService(rep.Health),
	}
}

func getUser(ctx context.Context, repo repository.UserRepository, userID string) (*models.User, error) {
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}
	return user, nil
}

func getPost(ctx context.Context, repo repository.PostRepository, postID string) (*models.Post, error) {
	post, err := repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, postNotFound()
		}
		return nil, err
	}
	return post, nil
}

func uploadImage(ctx context.Context, media storage.MediaStorage, folder, blob string) (string, error) {
	url, err := media.Upload(ctx, folder, blob)
	if err != nil {
		return "", imageError(err)
	}
	return url, nil
}

func imageError(err error) error {
	if errors.Is(err, storage.ErrInvalidImage) {
		return invalidInput("Invalid image")
	}
	return err
}

func indexUsers(users []models.User) map[string]*models.User {
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID
}

// populatePosts resolves owners and commenters with a single user lookup.
func populatePosts(ctx context.Context, repo repository.UserRepository, posts []models.Post) ([]models.PostView, error) {
	ids := models.NewIDSet()
	for _, post := range posts {
		ids.Add(post.UserID)
		for _, c := range post.Comments {
			ids.Add(c.UserID)
		}
	}

	users, err := repo.GetUsersByIDs(ctx, ids.Slice())
	if err != nil {
		return nil, err
	}
	byID := indexUsers(users)

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, models.NewPostView(post, byID))
	}

	return views, nil
}
