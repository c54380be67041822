package service

import (
	"context"
	"errors"
	"fmt"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
	"time"

	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is an issued token together with the user it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	hasher   PasswordHasher
	revoker  storage.TokenRevoker
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenService,
	hasher PasswordHasher,
	revoker storage.TokenRevoker,
	validate *validator.Validate,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		revoker:  revoker,
		validate: validate,
		now:      time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput("All fields are required")
	}

	if err := s.validate.Var(req.Email, "email"); err != nil {
		return nil, invalidInput("Invalid email format")
	}

	if err := ensureUnique(ctx, s.userRepo.GetUserByUsername, req.Username, "Username is already taken"); err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.userRepo.GetUserByEmail, req.Email, "Email is already taken"); err != nil {
		return nil, err
	}

	if err := checkPassword(req.Password); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: digest,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalidInput("Username or email is already taken")
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	invalid := newError(ErrInvalidCredentials, "Invalid username or password")

	if err := s.validate.Struct(req); err != nil {
		return nil, invalid
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	ok, err := s.hasher.Compare(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalid
	}

	return s.issue(user)
}

// Logout revokes a still valid token. Missing or invalid tokens are ignored.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, unauthenticated("Unauthorized: No Token Provided")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, unauthenticated("Unauthorized: Invalid Token")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, unauthenticated("Unauthorized: Invalid Token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthenticated("User not found")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя сессии: %w", err)
	}

	return user.Sanitized(), nil
}

func (s *authService) issue(user *models.User) (*Session, error) {
	token, claims, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user.Sanitized(),
	}, nil
}

// ensureUnique fails with InvalidInput when lookup finds a user.
func ensureUnique(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value, message string) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return invalidInput(message)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("ошибка при проверке уникальности: %w", err)
}
