package service

import (
	"context"
	"fmt"
	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/storage"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	seq   int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	user.Followers = models.NewIDSet(user.Followers...)
	user.Following = models.NewIDSet(user.Following...)
	user.LikedPosts = models.NewIDSet(user.LikedPosts...)
	user.CreatedAt = time.Now()

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if match(u) {
			clone := *u
			clone.Followers = u.Followers.Clone()
			clone.Following = u.Following.Clone()
			clone.LikedPosts = u.LikedPosts.Clone()
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *memUsers) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	for _, id := range ids {
		if u, err := m.GetUserByID(ctx, id); err == nil {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (m *memUsers) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Username = user.Username
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.Bio = user.Bio
	stored.Link = user.Link
	stored.ProfileImg = user.ProfileImg
	stored.CoverImg = user.CoverImg
	return nil
}

func (m *memUsers) mutate(id string, fn func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		fn(u)
	}
	return nil
}

func (m *memUsers) AddFollow(_ context.Context, followerID, followeeID string) error {
	_ = m.mutate(followeeID, func(u *models.User) { u.Followers.Add(followerID) })
	return m.mutate(followerID, func(u *models.User) { u.Following.Add(followeeID) })
}

func (m *memUsers) RemoveFollow(_ context.Context, followerID, followeeID string) error {
	_ = m.mutate(followeeID, func(u *models.User) { u.Followers.Remove(followerID) })
	return m.mutate(followerID, func(u *models.User) { u.Following.Remove(followeeID) })
}

func (m *memUsers) AddLikedPost(_ context.Context, userID, postID string) error {
	return m.mutate(userID, func(u *models.User) { u.LikedPosts.Add(postID) })
}

func (m *memUsers) RemoveLikedPost(_ context.Context, userID, postID string) error {
	return m.mutate(userID, func(u *models.User) { u.LikedPosts.Remove(postID) })
}

func (m *memUsers) SampleUsers(_ context.Context, excludeIDs []string, size int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	excluded := models.NewIDSet(excludeIDs...)
	users := []models.User{}
	for _, u := range m.users {
		if !excluded.Contains(u.ID) && len(users) < size {
			users = append(users, *u)
		}
	}
	return users, nil
}

type memPosts struct {
	mu    sync.Mutex
	posts []*models.Post
	seq   int
	clock time.Time
}

func newMemPosts() *memPosts {
	return &memPosts{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memPosts) Create(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.clock = m.clock.Add(time.Minute)
	post.ID = fmt.Sprintf("post-%d", m.seq)
	post.CreatedAt = m.clock
	post.Likes = models.NewIDSet()
	post.Comments = []models.Comment{}

	stored := *post
	m.posts = append(m.posts, &stored)
	return nil
}

func clonePost(p *models.Post) *models.Post {
	clone := *p
	clone.Likes = p.Likes.Clone()
	clone.Comments = append([]models.Comment{}, p.Comments...)
	return &clone
}

func (m *memPosts) GetByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPosts) mutate(id string, fn func(*models.Post)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID == id {
			fn(p)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPosts) AddLike(_ context.Context, postID, userID string) error {
	return m.mutate(postID, func(p *models.Post) { p.Likes.Add(userID) })
}

func (m *memPosts) RemoveLike(_ context.Context, postID, userID string) error {
	return m.mutate(postID, func(p *models.Post) { p.Likes.Remove(userID) })
}

func (m *memPosts) AddComment(_ context.Context, postID string, comment *models.Comment) error {
	return m.mutate(postID, func(p *models.Post) {
		comment.ID = fmt.Sprintf("comment-%d", len(p.Comments)+1)
		comment.PostID = postID
		p.Comments = append(p.Comments, *comment)
	})
}

func (m *memPosts) filter(keep func(*models.Post) bool, newestFirst bool) []models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := []models.Post{}
	for _, p := range m.posts {
		if keep(p) {
			posts = append(posts, *clonePost(p))
		}
	}
	if newestFirst {
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	}
	return posts
}

func (m *memPosts) ListAll(context.Context) ([]models.Post, error) {
	return m.filter(func(*models.Post) bool { return true }, true), nil
}

func (m *memPosts) ListByUsers(_ context.Context, userIDs []string) ([]models.Post, error) {
	set := models.NewIDSet(userIDs...)
	return m.filter(func(p *models.Post) bool { return set.Contains(p.UserID) }, true), nil
}

func (m *memPosts) ListByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	set := models.NewIDSet(ids...)
	return m.filter(func(p *models.Post) bool { return set.Contains(p.ID) }, false), nil
}

type memNotifications struct {
	mu    sync.Mutex
	items []models.Notification
}

func (m *memNotifications) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID = fmt.Sprintf("notification-%d", len(m.items)+1)
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListByRecipient(_ context.Context, userID string) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := []models.Notification{}
	for _, n := range m.items {
		if n.To == userID {
			list = append(list, n)
		}
	}
	return list, nil
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].To == userID {
			m.items[i].Read = true
		}
	}
	return nil
}

func (m *memNotifications) DeleteAllByRecipient(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, n := range m.items {
		if n.To != userID {
			kept = append(kept, n)
		}
	}
	m.items = kept
	return nil
}

type fakeMedia struct {
	uploaded  []string
	destroyed []string
	uploadErr error
}

func (f *fakeMedia) Upload(_ context.Context, folder, blob string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if strings.HasPrefix(blob, "bad") {
		return "", storage.ErrInvalidImage
	}
	url := fmt.Sprintf("http://media/%s/%d", folder, len(f.uploaded)+1)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeMedia) Validate(blob string) error {
	if strings.HasPrefix(blob, "bad") {
		return storage.ErrInvalidImage
	}
	return nil
}

func (f *fakeMedia) Destroy(_ context.Context, url string) error {
	f.destroyed = append(f.destroyed, url)
	return nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

type testEnv struct {
	users         *memUsers
	posts         *memPosts
	notifications *memNotifications
	media         *fakeMedia
	revoker       *fakeRevoker
	tokens        TokenService
	hasher        PasswordHasher
	svc           *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:         newMemUsers(),
		posts:         newMemPosts(),
		notifications: &memNotifications{},
		media:         &fakeMedia{},
		revoker:       &fakeRevoker{revoked: map[string]time.Duration{}},
		tokens:        NewTokenService("test-secret", 15*24*time.Hour),
		hasher:        NewPasswordHasher(bcrypt.MinCost),
	}

	repo := &repository.Repository{
		User:         env.users,
		Post:         env.posts,
		Notification: env.notifications,
	}
	validate := validator.New()
	notifications := NewNotificationService(repo.Notification, repo.User)

	env.svc = &Service{
		User:         NewUserService(repo.User, notifications, env.media, env.hasher, validate),
		Post:         NewPostService(repo.Post, repo.User, notifications, env.media),
		Auth:         NewAuthService(repo.User, env.tokens, env.hasher, env.revoker, validate),
		Notification: notifications,
	}

	return env
}

// addUser stores a user whose password is "password" and returns its id.
func (e *testEnv) addUser(t *testing.T, username string) string {
	t.Helper()

	digest, err := e.hasher.Hash("password")
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{
		Username:     username,
		FullName:     strings.ToUpper(username),
		Email:        username + "@example.com",
		PasswordHash: digest,
	}
	if err := e.users.CreateUser(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user.ID
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()

	user, err := e.users.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return user
}
