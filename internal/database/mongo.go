package database

import (
	"context"
	"fmt"
	"log/slog"
	"socialhub/internal/config"
	"socialhub/internal/repository/mongostore"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func ConnectMongo(ctx context.Context, cfg config.Mongo) (*MongoDB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ошибка при проверке подключения к MongoDB: %w", err)
	}

	slog.Info("Успешное подключение к MongoDB", "database", cfg.Database)

	return &MongoDB{Client: client, Database: client.Database(cfg.Database)}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

func mongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		mongostore.UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		mongostore.PostsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		mongostore.NotificationsCollection: {
			{Keys: bson.D{{Key: "to", Value: 1}}},
		},
	}
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	for collection, indexes := range mongoIndexes() {
		if _, err := m.Database.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ошибка при создании индексов %s: %w", collection, err)
		}
	}

	slog.Info("Индексы MongoDB созданы")
	return nil
}
