package repo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const authSessionTTL = 10 * time.Hour

// RedisAuthStorage хранит логин-сессии: sessionID -> accountID.
type RedisAuthStorage struct {
	client *redis.Client
}

func NewAuthRedisStorage(redis *redis.Client) *RedisAuthStorage {
	return &RedisAuthStorage{client: redis}
}

func (r *RedisAuthStorage) StoreSession(ctx context.Context, sessionID, accountID string) error {
	return r.client.Set(ctx, "auth:"+sessionID, accountID, authSessionTTL).Err()
}

func (r *RedisAuthStorage) GetAccountIDBySession(ctx context.Context, sessionID string) (string, bool) {
	id, err := r.client.Get(ctx, "auth:"+sessionID).Result()
	if err != nil {
		return "", false
	}
	return id, true
}

func (r *RedisAuthStorage) DeleteSession(ctx context.Context, sessionID string) bool {
	deleted, err := r.client.Del(ctx, "auth:"+sessionID).Result()
	return err == nil && deleted > 0
}
