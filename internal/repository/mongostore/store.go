// Package mongostore implements the repository interfaces on MongoDB.
package mongostore

import (
	"socialhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	UsersCollection         = "users"
	PostsCollection         = "posts"
	NotificationsCollection = "notifications"
)

// NewRepository builds the MongoDB-backed repositories on db.
func NewRepository(db *mongo.Database) *repository.Repository {
	return &repository.Repository{
		User:         &userStore{coll: db.Collection(UsersCollection)},
		Post:         &postStore{coll: db.Collection(PostsCollection)},
		Notification: &notificationStore{coll: db.Collection(NotificationsCollection)},
		Health:       &healthStore{client: db.Client()},
	}
}

func newID() string {
	return bson.NewObjectID().Hex()
}
