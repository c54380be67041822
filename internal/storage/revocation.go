package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"socialhub/internal/config"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// TokenRevoker remembers logged-out session tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisRevoker struct {
	client redis.Cmdable
}

func NewRedisRevoker(client redis.Cmdable) *RedisRevoker {
	return &RedisRevoker{client: client}
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при отзыве токена: %w", err)
	}

	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке токена: %w", err)
	}

	return n > 0, nil
}

// NopRevoker is used when no Redis is configured; logout only clears the cookie.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// NewTokenRevoker connects to Redis when an address is configured.
func NewTokenRevoker(ctx context.Context, cfg config.Redis) (TokenRevoker, func() error, error) {
	if cfg.Addr == "" {
		slog.Info("REDIS_ADDR не задан, отзыв токенов отключен")
		return NopRevoker{}, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	slog.Info("Успешное подключение к Redis", "addr", cfg.Addr)
	return NewRedisRevoker(client), client.Close, nil
}
