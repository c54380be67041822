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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type postStore struct {
	coll *mongo.Collection
}

func (s *postStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = newID()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.Likes == nil {
		post.Likes = models.NewIDSet()
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (s *postStore) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	err := s.coll.FindOne(ctx, byID(postID)).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("пост с ID %s не найден: %w", postID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	normalizePost(&post)
	return &post, nil
}

func (s *postStore) Delete(ctx context.Context, postID string) error {
	result, err := s.coll.DeleteOne(ctx, byID(postID))
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("пост с ID %s не найден: %w", postID, repository.ErrNotFound)
	}

	return nil
}

func (s *postStore) update(ctx context.Context, postID string, update bson.M) error {
	result, err := s.coll.UpdateOne(ctx, byID(postID), update)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("пост с ID %s не найден: %w", postID, repository.ErrNotFound)
	}

	return nil
}

func (s *postStore) AddLike(ctx context.Context, postID, userID string) error {
	return s.update(ctx, postID, addToSetUpdate("likes", userID, time.Now().UTC()))
}

func (s *postStore) RemoveLike(ctx context.Context, postID, userID string) error {
	return s.update(ctx, postID, pullUpdate("likes", userID, time.Now().UTC()))
}

func (s *postStore) AddComment(ctx context.Context, postID string, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = newID()
	}
	comment.PostID = postID
	comment.CreatedAt = time.Now().UTC()

	return s.update(ctx, postID, pushCommentUpdate(*comment, comment.CreatedAt))
}

func (s *postStore) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(newestFirst()))
}

func (s *postStore) ListByUsers(ctx context.Context, userIDs []string) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	return s.find(ctx, inIDs("user", userIDs), options.Find().SetSort(newestFirst()))
}

// ListByIDs returns posts in natural (insertion) order.
func (s *postStore) ListByIDs(ctx context.Context, postIDs []string) ([]models.Post, error) {
	if len(postIDs) == 0 {
		return []models.Post{}, nil
	}
	return s.find(ctx, inIDs("_id", postIDs), options.Find())
}

func (s *postStore) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("ошибка при чтении постов: %w", err)
	}

	for i := range posts {
		normalizePost(&posts[i])
	}

	return posts, nil
}

// normalizePost fills nil collections and restores the comment back-reference.
func normalizePost(post *models.Post) {
	if post.Likes == nil {
		post.Likes = models.NewIDSet()
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	for i := range post.Comments {
		post.Comments[i].PostID = post.ID
	}
}
