package test

import (
	"context"
	"socialhub/internal/models"
	"socialhub/internal/service"

	"github.com/stretchr/testify/mock"
)

var anyCtx = mock.Anything

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req service.SignupRequest) (*service.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetSuggested(ctx context.Context, userID string) ([]*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) FollowUnfollow(ctx context.Context, currentUserID, targetID string) (bool, error) {
	args := m.Called(ctx, currentUserID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, userID string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, requesterID string) error {
	args := m.Called(ctx, postID, requesterID)
	return args.Error(0)
}

func (m *MockPostService) LikeUnlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CommentOnPost(ctx context.Context, postID, userID, text string) (*models.Post, error) {
	args := m.Called(ctx, postID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListAll(ctx context.Context) ([]models.PostView, error) {
	args := m.Called(ctx)
	return postViews(args.Get(0)), args.Error(1)
}

func (m *MockPostService) ListFollowing(ctx context.Context, userID string) ([]models.PostView, error) {
	args := m.Called(ctx, userID)
	return postViews(args.Get(0)), args.Error(1)
}

func (m *MockPostService) ListByUser(ctx context.Context, username string) ([]models.PostView, error) {
	args := m.Called(ctx, username)
	return postViews(args.Get(0)), args.Error(1)
}

func (m *MockPostService) ListLiked(ctx context.Context, userID string) ([]models.PostView, error) {
	args := m.Called(ctx, userID)
	return postViews(args.Get(0)), args.Error(1)
}

func postViews(v interface{}) []models.PostView {
	if v == nil {
		return nil
	}
	return v.([]models.PostView)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, from, to string, kind models.NotificationType) error {
	args := m.Called(ctx, from, to, kind)
	return args.Error(0)
}

func (m *MockNotificationService) ListAndMarkRead(ctx context.Context, userID string) ([]models.NotificationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationView), args.Error(1)
}

func (m *MockNotificationService) DeleteAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (*service.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthStatus), args.Error(1)
}
