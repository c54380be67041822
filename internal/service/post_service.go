package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
)

const postImagesFolder = "posts"

type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

type PostService interface {
	CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
	LikeUnlike(ctx context.Context, postID, userID string) (*models.Post, error)
	CommentOnPost(ctx context.Context, postID, userID, text string) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.PostView, error)
	ListFollowing(ctx context.Context, userID string) ([]models.PostView, error)
	ListByUser(ctx context.Context, username string) ([]models.PostView, error)
	ListLiked(ctx context.Context, userID string) ([]models.PostView, error)
}

type postService struct {
	postRepo      repository.PostRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	media         storage.MediaStorage
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	media storage.MediaStorage,
) PostService {
	return &postService{
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
		media:         media,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error) {
	if _, err := getUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	if req.Text == "" && req.Img == "" {
		return nil, invalidInput("Post must have text or images")
	}

	post := &models.Post{
		UserID: userID,
		Text:   req.Text,
	}

	if req.Img != "" {
		url, err := uploadImage(ctx, s.media, postImagesFolder, req.Img)
		if err != nil {
			return nil, err
		}
		post.Img = &url
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.Img != nil {
			if destroyErr := s.media.Destroy(ctx, *post.Img); destroyErr != nil {
				slog.Error("Не удалось удалить изображение несохраненного поста", "url", *post.Img, "error", destroyErr)
			}
		}
		return nil, fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := getPost(ctx, s.postRepo, postID)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return newError(ErrUnauthorized, "Not authorized to delete this post")
	}

	if post.Img != nil && *post.Img != "" {
		if err := s.media.Destroy(ctx, *post.Img); err != nil {
			return err
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return postNotFound()
		}
		return err
	}

	return nil
}

func (s *postService) LikeUnlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := getPost(ctx, s.postRepo, postID)
	if err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	if post.Likes.Contains(userID) {
		if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.RemoveLikedPost(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddLikedPost(ctx, userID, postID); err != nil {
			return nil, err
		}
		if err := s.notifications.Notify(ctx, userID, post.UserID, models.NotificationLike); err != nil {
			return nil, err
		}
	}

	return getPost(ctx, s.postRepo, postID)
}

func (s *postService) CommentOnPost(ctx context.Context, postID, userID, text string) (*models.Post, error) {
	if text == "" {
		return nil, invalidInput("Text field is required")
	}

	if _, err := getPost(ctx, s.postRepo, postID); err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: userID,
	}

	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, postNotFound()
		}
		return nil, err
	}

	return getPost(ctx, s.postRepo, postID)
}

func (s *postService) ListAll(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, notFound("No post found")
	}

	return populatePosts(ctx, s.userRepo, posts)
}

func (s *postService) ListFollowing(ctx context.Context, userID string) ([]models.PostView, error) {
	user, err := getUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUsers(ctx, user.Following.Slice())
	if err != nil {
		return nil, err
	}

	return populatePosts(ctx, s.userRepo, posts)
}

func (s *postService) ListByUser(ctx context.Context, username string) ([]models.PostView, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}

	posts, err := s.postRepo.ListByUsers(ctx, []string{user.ID})
	if err != nil {
		return nil, err
	}

	return populatePosts(ctx, s.userRepo, posts)
}

func (s *postService) ListLiked(ctx context.Context, userID string) ([]models.PostView, error) {
	user, err := getUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByIDs(ctx, user.LikedPosts.Slice())
	if err != nil {
		return nil, err
	}

	return populatePosts(ctx, s.userRepo, posts)
}
