package service

import (
	"context"
	"strings"
	"testing"

	"socialhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_FollowScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	followed, err := env.svc.User.FollowUnfollow(ctx, alice, bob)

	require.NoError(t, err)
	assert.True(t, followed)
	assert.True(t, env.user(t, bob).Followers.Contains(alice))
	assert.True(t, env.user(t, alice).Following.Contains(bob))

	require.Len(t, env.notifications.items, 1)
	n := env.notifications.items[0]
	assert.Equal(t, alice, n.From)
	assert.Equal(t, bob, n.To)
	assert.Equal(t, models.NotificationFollow, n.Type)
	assert.False(t, n.Read)
}

func TestUserService_FollowToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	beforeAlice, beforeBob := env.user(t, alice), env.user(t, bob)

	followed, err := env.svc.User.FollowUnfollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, followed)

	followed, err = env.svc.User.FollowUnfollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, followed)

	assert.Equal(t, beforeAlice.Following, env.user(t, alice).Following)
	assert.Equal(t, beforeBob.Followers, env.user(t, bob).Followers)
	assert.Len(t, env.notifications.items, 1)
}

func TestUserService_FollowErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	t.Run("Подписка на себя", func(t *testing.T) {
		_, err := env.svc.User.FollowUnfollow(ctx, alice, alice)

		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.Equal(t, "Cannot self follow", messageOf(t, err))
		assert.Equal(t, 0, env.user(t, alice).Following.Len())
		assert.Empty(t, env.notifications.items)
	})

	t.Run("Подписка на несуществующего", func(t *testing.T) {
		_, err := env.svc.User.FollowUnfollow(ctx, alice, "ghost")

		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "User not found", messageOf(t, err))
	})

	t.Run("Текущий пользователь удален", func(t *testing.T) {
		_, err := env.svc.User.FollowUnfollow(ctx, "ghost", alice)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	user, err := env.svc.User.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = env.svc.User.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_GetSuggested(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")
	for _, name := range []string{"carol", "dave", "erin", "frank", "grace"} {
		env.addUser(t, name)
	}

	_, err := env.svc.User.FollowUnfollow(ctx, alice, bob)
	require.NoError(t, err)

	suggested, err := env.svc.User.GetSuggested(ctx, alice)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(suggested), 4)
	for _, u := range suggested {
		assert.NotEqual(t, alice, u.ID)
		assert.NotEqual(t, bob, u.ID)
		assert.Empty(t, u.PasswordHash)
	}

	_, err = env.svc.User.GetSuggested(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfilePasswords(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	t.Run("Нужны оба пароля", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{NewPassword: "newsecret"})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Both current and new password needed", messageOf(t, err))

		_, err = env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{CurrentPassword: "password"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Неверный текущий пароль", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newsecret",
		})

		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "Current password is incorrect", messageOf(t, err))
	})

	t.Run("Короткий новый пароль", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			CurrentPassword: "password",
			NewPassword:     "short",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Новый пароль длиннее 72 байт", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			CurrentPassword: "password",
			NewPassword:     strings.Repeat("n", 80),
		})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Password must be at most 72 bytes long", messageOf(t, err))
	})

	t.Run("Смена пароля", func(t *testing.T) {
		user, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			CurrentPassword: "password",
			NewPassword:     "newsecret",
		})
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)

		ok, err := env.hasher.Compare("newsecret", env.user(t, alice).PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUserService_UpdateProfileFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	env.addUser(t, "bob")

	t.Run("Пустые поля не меняют профиль", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{Bio: "hello", Link: "https://alice.dev"})
		require.NoError(t, err)

		user, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{FullName: "Alice A."})
		require.NoError(t, err)

		assert.Equal(t, "Alice A.", user.FullName)
		assert.Equal(t, "hello", user.Bio)
		assert.Equal(t, "https://alice.dev", user.Link)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("Имя занято", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{Username: "bob"})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Username is already taken", messageOf(t, err))
	})

	t.Run("Неверный email", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{Email: "nope"})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "Invalid email format", messageOf(t, err))
	})

	t.Run("Смена имени и email", func(t *testing.T) {
		user, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			Username: "alicia",
			Email:    "alicia@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "alicia", user.Username)
		assert.Equal(t, "alicia@example.com", env.user(t, alice).Email)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, "ghost", UpdateProfileRequest{Bio: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_UpdateProfileImages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	user, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{ProfileImg: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	first := user.ProfileImg
	assert.NotEmpty(t, first)
	assert.Empty(t, env.media.destroyed)

	user, err = env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
		ProfileImg: "data:image/png;base64,BBBB",
		CoverImg:   "data:image/png;base64,CCCC",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{first}, env.media.destroyed)
	assert.NotEqual(t, first, user.ProfileImg)
	assert.NotEmpty(t, user.CoverImg)
	assert.Equal(t, user.CoverImg, env.user(t, alice).CoverImg)

	cover := user.CoverImg

	_, err = env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{CoverImg: "bad-blob"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Invalid image", messageOf(t, err))

	assert.Equal(t, []string{first}, env.media.destroyed)
	assert.Equal(t, cover, env.user(t, alice).CoverImg)
}

func TestUserService_UpdateProfileFailureKeepsImages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	env.addUser(t, "bob")

	user, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
		ProfileImg: "data:image/png;base64,AAAA",
		CoverImg:   "data:image/png;base64,BBBB",
	})
	require.NoError(t, err)
	uploaded := len(env.media.uploaded)

	t.Run("Плохая обложка при новом аватаре", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			ProfileImg: "data:image/png;base64,CCCC",
			CoverImg:   "bad-blob",
		})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, env.media.destroyed)
		assert.Len(t, env.media.uploaded, uploaded)
		assert.Equal(t, user.ProfileImg, env.user(t, alice).ProfileImg)
		assert.Equal(t, user.CoverImg, env.user(t, alice).CoverImg)
	})

	t.Run("Имя занято при новом аватаре", func(t *testing.T) {
		_, err := env.svc.User.UpdateProfile(ctx, alice, UpdateProfileRequest{
			Username:   "bob",
			ProfileImg: "data:image/png;base64,CCCC",
		})

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, env.media.destroyed)
		assert.Equal(t, user.ProfileImg, env.user(t, alice).ProfileImg)
	})
}
