package mongostore

import (
	"context"
	"fmt"
	"socialhub/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type healthStore struct {
	client *mongo.Client
}

func (s *healthStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ошибка при проверке MongoDB: %w", err)
	}
	return nil
}

func (s *healthStore) Driver() string {
	return config.DriverMongo
}
