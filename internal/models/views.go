package models

import "time"

// PostView is a post with its owner and commenters resolved.
type PostView struct {
	ID        string        `json:"_id"`
	User      *User         `json:"user"`
	Text      string        `json:"text,omitempty"`
	Img       *string       `json:"img"`
	Likes     IDSet         `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CommentView struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationSender is the public part of the user that triggered a notification.
type NotificationSender struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg"`
}

type NotificationView struct {
	ID        string              `json:"_id"`
	From      *NotificationSender `json:"from"`
	To        string              `json:"to"`
	Type      NotificationType    `json:"type"`
	Read      bool                `json:"read"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// NewPostView resolves owner and commenter ids against users. Unknown ids
// resolve to nil.
func NewPostView(post Post, users map[string]*User) PostView {
	view := PostView{
		ID:        post.ID,
		User:      users[post.UserID].Sanitized(),
		Text:      post.Text,
		Img:       post.Img,
		Likes:     post.Likes.Clone(),
		Comments:  make([]CommentView, 0, len(post.Comments)),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	for _, c := range post.Comments {
		view.Comments = append(view.Comments, CommentView{
			ID:        c.ID,
			Text:      c.Text,
			User:      users[c.UserID].Sanitized(),
			CreatedAt: c.CreatedAt,
		})
	}

	return view
}

func NewNotificationView(n Notification, sender *User) NotificationView {
	view := NotificationView{
		ID:        n.ID,
		To:        n.To,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if sender != nil {
		view.From = &NotificationSender{
			ID:         sender.ID,
			Username:   sender.Username,
			ProfileImg: sender.ProfileImg,
		}
	}
	return view
}
