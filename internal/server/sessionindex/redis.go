// Package sessionindex tracks live sessions in Redis so that sign-out can
// revoke access tokens before their JWT expiry. Keys are
// "session:<userID>:<sessionID>" with a TTL matching the refresh window.
package sessionindex

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisIndex struct {
	client *redis.Client
}

// New parses the Redis URL, verifies connectivity, and returns the index.
func New(ctx context.Context, redisURL string) (*RedisIndex, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisIndex{client: client}, nil
}

func key(userID, sessionID string) string {
	return keyPrefix + userID + ":" + sessionID
}

func (i *RedisIndex) Add(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	return i.client.Set(ctx, key(userID, sessionID), "1", ttl).Err()
}

func (i *RedisIndex) Exists(ctx context.Context, userID, sessionID string) (bool, error) {
	n, err := i.client.Exists(ctx, key(userID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (i *RedisIndex) Remove(ctx context.Context, userID, sessionID string) error {
	return i.client.Del(ctx, key(userID, sessionID)).Err()
}

func (i *RedisIndex) Close() error {
	return i.client.Close()
}
