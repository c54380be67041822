package service

import (
	"context"
	"errors"
	"fmt"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"

	"github.com/go-playground/validator/v10"
)

const (
	suggestedUsersSize = 4
	userImagesFolder   = "users"
)

// UpdateProfileRequest is a partial update; empty fields keep the stored value.
type UpdateProfileRequest struct {
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

type UserService interface {
	GetProfile(ctx context.Context, username string) (*models.User, error)
	GetSuggested(ctx context.Context, userID string) ([]*models.User, error)
	FollowUnfollow(ctx context.Context, currentUserID, targetID string) (bool, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo      repository.UserRepository
	notifications NotificationService
	media         storage.MediaStorage
	hasher        PasswordHasher
	validate      *validator.Validate
}

func NewUserService(
	userRepo repository.UserRepository,
	notifications NotificationService,
	media storage.MediaStorage,
	hasher PasswordHasher,
	validate *validator.Validate,
) UserService {
	return &userService{
		userRepo:      userRepo,
		notifications: notifications,
		media:         media,
		hasher:        hasher,
		validate:      validate,
	}
}

func (s *userService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}

	return user.Sanitized(), nil
}

func (s *userService) GetSuggested(ctx context.Context, userID string) ([]*models.User, error) {
	user, err := getUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{user.ID}, user.Following.Slice()...)

	sample, err := s.userRepo.SampleUsers(ctx, exclude, suggestedUsersSize)
	if err != nil {
		return nil, err
	}

	suggested := make([]*models.User, 0, len(sample))
	for i := range sample {
		suggested = append(suggested, sample[i].Sanitized())
	}

	return suggested, nil
}

// FollowUnfollow toggles the relationship and reports whether current now follows target.
func (s *userService) FollowUnfollow(ctx context.Context, currentUserID, targetID string) (bool, error) {
	if currentUserID == targetID {
		return false, newError(ErrInvalidOperation, "Cannot self follow")
	}

	target, err := getUser(ctx, s.userRepo, targetID)
	if err != nil {
		return false, err
	}

	current, err := getUser(ctx, s.userRepo, currentUserID)
	if err != nil {
		return false, err
	}

	if current.Following.Contains(target.ID) {
		if err := s.userRepo.RemoveFollow(ctx, current.ID, target.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.userRepo.AddFollow(ctx, current.ID, target.ID); err != nil {
		return false, err
	}

	if err := s.notifications.Notify(ctx, current.ID, target.ID, models.NotificationFollow); err != nil {
		return false, err
	}

	return true, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := getUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return nil, invalidInput("Both current and new password needed")
	}

	if req.NewPassword != "" {
		ok, err := s.hasher.Compare(req.CurrentPassword, user.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(ErrInvalidCredentials, "Current password is incorrect")
		}
		if err := checkPassword(req.NewPassword); err != nil {
			return nil, err
		}

		digest, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}

	if req.Username != "" && req.Username != user.Username {
		if err := ensureUnique(ctx, s.userRepo.GetUserByUsername, req.Username, "Username is already taken"); err != nil {
			return nil, err
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if err := s.validate.Var(req.Email, "email"); err != nil {
			return nil, invalidInput("Invalid email format")
		}
		if err := ensureUnique(ctx, s.userRepo.GetUserByEmail, req.Email, "Email is already taken"); err != nil {
			return nil, err
		}
		user.Email = req.Email
	}

	// nothing is destroyed until every new image is known to be acceptable
	for _, blob := range []string{req.ProfileImg, req.CoverImg} {
		if blob == "" {
			continue
		}
		if err := s.media.Validate(blob); err != nil {
			return nil, imageError(err)
		}
	}

	if req.ProfileImg != "" {
		if user.ProfileImg, err = s.replaceImage(ctx, user.ProfileImg, req.ProfileImg); err != nil {
			return nil, err
		}
	}

	if req.CoverImg != "" {
		if user.CoverImg, err = s.replaceImage(ctx, user.CoverImg, req.CoverImg); err != nil {
			return nil, err
		}
	}

	user.FullName = keep(user.FullName, req.FullName)
	user.Bio = keep(user.Bio, req.Bio)
	user.Link = keep(user.Link, req.Link)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalidInput("Username or email is already taken")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	return user.Sanitized(), nil
}

// replaceImage destroys the old image before uploading the new blob.
func (s *userService) replaceImage(ctx context.Context, oldURL, blob string) (string, error) {
	if oldURL != "" {
		if err := s.media.Destroy(ctx, oldURL); err != nil {
			return "", err
		}
	}

	return uploadImage(ctx, s.media, userImagesFolder, blob)
}

func keep(current, update string) string {
	if update == "" {
		return current
	}
	return update
}
