package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"socialhub/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const postColumns = `post_id, user_id, text, img, likes, created_at, updated_at`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
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

	query := `
		INSERT INTO posts (post_id, user_id, text, img, likes, created_at, updated_at)
		VALUES (:post_id, :user_id, :text, :img, :likes, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s не найден: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	posts := []models.Post{post}
	if err := r.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s не найден: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	return addToArray(ctx, r.db, "posts", "post_id", "likes", postID, userID)
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return removeFromArray(ctx, r.db, "posts", "post_id", "likes", postID, userID)
}

func (r *postRepository) AddComment(ctx context.Context, postID string, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.PostID = postID
	comment.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO comments (comment_id, post_id, user_id, text, created_at)
		VALUES (:comment_id, :post_id, :user_id, :text, :created_at)
	`

	if _, err := tx.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("ошибка при добавлении комментария: %w", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE posts SET updated_at = NOW() WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("пост с ID %s не найден: %w", postID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, seq DESC`
	return r.list(ctx, query)
}

func (r *postRepository) ListByUsers(ctx context.Context, userIDs []string) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = ANY($1) ORDER BY created_at DESC, seq DESC`
	return r.list(ctx, query, pq.Array(userIDs))
}

func (r *postRepository) ListByIDs(ctx context.Context, postIDs []string) ([]models.Post, error) {
	if len(postIDs) == 0 {
		return []models.Post{}, nil
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = ANY($1) ORDER BY seq`
	return r.list(ctx, query, pq.Array(postIDs))
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	if err := r.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// attachComments loads comments for posts in one query, oldest first.
func (r *postRepository) attachComments(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	index := make(map[string]int, len(posts))
	for i := range posts {
		posts[i].Comments = []models.Comment{}
		ids = append(ids, posts[i].ID)
		index[posts[i].ID] = i
	}

	query := `
		SELECT comment_id, post_id, user_id, text, created_at
		FROM comments WHERE post_id = ANY($1) ORDER BY seq
	`

	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	for _, c := range comments {
		if i, ok := index[c.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}

	return nil
}
