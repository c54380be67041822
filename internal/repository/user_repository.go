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

const userColumns = `user_id, username, full_name, email, password_hash, bio, link, profile_img, cover_img,
	followers, following, liked_posts, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
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

	query := `
		INSERT INTO users (user_id, username, full_name, email, password_hash, bio, link, profile_img, cover_img,
			followers, following, liked_posts, created_at, updated_at)
		VALUES (:user_id, :username, :full_name, :email, :password_hash, :bio, :link, :profile_img, :cover_img,
			:followers, :following, :liked_posts, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("пользователь %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	err := r.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с %s %s не найден: %w", column, value, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getOne(ctx, "user_id", userID)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return []models.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ANY($1)`

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, query, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = :username, full_name = :full_name, email = :email, password_hash = :password_hash,
			bio = :bio, link = :link, profile_img = :profile_img, cover_img = :cover_img, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("пользователь %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s не найден: %w", user.ID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) AddFollow(ctx context.Context, followerID, followeeID string) error {
	if err := addToArray(ctx, r.db, "users", "user_id", "followers", followeeID, followerID); err != nil {
		return err
	}
	return addToArray(ctx, r.db, "users", "user_id", "following", followerID, followeeID)
}

func (r *userRepository) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	if err := removeFromArray(ctx, r.db, "users", "user_id", "followers", followeeID, followerID); err != nil {
		return err
	}
	return removeFromArray(ctx, r.db, "users", "user_id", "following", followerID, followeeID)
}

func (r *userRepository) AddLikedPost(ctx context.Context, userID, postID string) error {
	return addToArray(ctx, r.db, "users", "user_id", "liked_posts", userID, postID)
}

func (r *userRepository) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return removeFromArray(ctx, r.db, "users", "user_id", "liked_posts", userID, postID)
}

func (r *userRepository) SampleUsers(ctx context.Context, excludeIDs []string, size int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE NOT (user_id = ANY($1)) ORDER BY random() LIMIT $2`

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, query, pq.Array(excludeIDs), size)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке пользователей: %w", err)
	}

	return users, nil
}
