package mongostore

import (
	"context"
	"errors"
	"fmt"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userStore struct {
	coll *mongo.Collection
}

func (s *userStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Followers == nil {
		user.Followers = models.NewIDSet()
	}
	if user.Following == nil {
		user.Following = models.NewIDSet()
	}
	if user.LikedPosts == nil {
		user.LikedPosts = models.NewIDSet()
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("пользователь %s: %w", user.Username, repository.ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (s *userStore) findOne(ctx context.Context, field, value string) (*models.User, error) {
	var user models.User

	err := s.coll.FindOne(ctx, bson.M{field: value}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("пользователь с %s %s не найден: %w", field, value, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (s *userStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.findOne(ctx, "_id", userID)
}

func (s *userStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "username", username)
}

func (s *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email", email)
}

func (s *userStore) GetUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	users := []models.User{}
	if len(userIDs) == 0 {
		return users, nil
	}

	cursor, err := s.coll.Find(ctx, inIDs("_id", userIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}

	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ошибка при чтении пользователей: %w", err)
	}

	return users, nil
}

func (s *userStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := s.coll.UpdateOne(ctx, byID(user.ID), profileUpdate(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("пользователь %s: %w", user.Username, repository.ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("пользователь с ID %s не найден: %w", user.ID, repository.ErrNotFound)
	}

	return nil
}

func (s *userStore) update(ctx context.Context, userID string, update any) error {
	if _, err := s.coll.UpdateOne(ctx, byID(userID), update); err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя %s: %w", userID, err)
	}
	return nil
}

func (s *userStore) AddFollow(ctx context.Context, followerID, followeeID string) error {
	now := time.Now().UTC()
	if err := s.update(ctx, followeeID, addToSetUpdate("followers", followerID, now)); err != nil {
		return err
	}
	return s.update(ctx, followerID, addToSetUpdate("following", followeeID, now))
}

func (s *userStore) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	now := time.Now().UTC()
	if err := s.update(ctx, followeeID, pullUpdate("followers", followerID, now)); err != nil {
		return err
	}
	return s.update(ctx, followerID, pullUpdate("following", followeeID, now))
}

func (s *userStore) AddLikedPost(ctx context.Context, userID, postID string) error {
	return s.update(ctx, userID, addToSetUpdate("likedPosts", postID, time.Now().UTC()))
}

func (s *userStore) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return s.update(ctx, userID, pullUpdate("likedPosts", postID, time.Now().UTC()))
}

func (s *userStore) SampleUsers(ctx context.Context, excludeIDs []string, size int) ([]models.User, error) {
	cursor, err := s.coll.Aggregate(ctx, samplePipeline(excludeIDs, size))
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке пользователей: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ошибка при чтении пользователей: %w", err)
	}

	return users, nil
}
