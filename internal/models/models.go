package models

import (
	"time"
)

type NotificationType string

const (
	NotificationFollow NotificationType = "follow"
	NotificationLike   NotificationType = "like"
)

type User struct {
	ID           string    `json:"_id" db:"user_id" bson:"_id"`
	Username     string    `json:"username" db:"username" bson:"username"`
	FullName     string    `json:"fullName" db:"full_name" bson:"fullName"`
	Email        string    `json:"email" db:"email" bson:"email"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password"`
	Bio          string    `json:"bio" db:"bio" bson:"bio"`
	Link         string    `json:"link" db:"link" bson:"link"`
	ProfileImg   string    `json:"profileImg" db:"profile_img" bson:"profileImg"`
	CoverImg     string    `json:"coverImg" db:"cover_img" bson:"coverImg"`
	Followers    IDSet     `json:"followers" db:"followers" bson:"followers"`
	Following    IDSet     `json:"following" db:"following" bson:"following"`
	LikedPosts   IDSet     `json:"likedPosts" db:"liked_posts" bson:"likedPosts"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}

// Sanitized returns a copy of the user without the password digest.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.Followers = u.Followers.Clone()
	clone.Following = u.Following.Clone()
	clone.LikedPosts = u.LikedPosts.Clone()
	return &clone
}

type Post struct {
	ID        string    `json:"_id" db:"post_id" bson:"_id"`
	UserID    string    `json:"user" db:"user_id" bson:"user"`
	Text      string    `json:"text,omitempty" db:"text" bson:"text"`
	Img       *string   `json:"img" db:"img" bson:"img"`
	Likes     IDSet     `json:"likes" db:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" db:"-" bson:"comments"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}

// Comment is embedded in a post and only ever appended.
type Comment struct {
	ID        string    `json:"_id" db:"comment_id" bson:"_id"`
	PostID    string    `json:"-" db:"post_id" bson:"-"`
	Text      string    `json:"text" db:"text" bson:"text"`
	UserID    string    `json:"user" db:"user_id" bson:"user"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
}

type Notification struct {
	ID        string           `json:"_id" db:"notification_id" bson:"_id"`
	From      string           `json:"from" db:"from_user_id" bson:"from"`
	To        string           `json:"to" db:"to_user_id" bson:"to"`
	Type      NotificationType `json:"type" db:"type" bson:"type"`
	Read      bool             `json:"read" db:"read" bson:"read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
}
