package redis

import (
	"context"
	"errors"
	"time"

	sessionPort "socialfeed/internal/ports/session"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryRedis نگهداری jti توکن‌ها با TTL برابر عمر توکن
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func (r *SessionRepositoryRedis) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return r.Client.Set(ctx, sessionKeyPrefix+tokenID, userID, ttl).Err()
}

func (r *SessionRepositoryRedis) Find(ctx context.Context, tokenID string) (string, error) {
	userID, err := r.Client.Get(ctx, sessionKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", sessionPort.ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (r *SessionRepositoryRedis) Delete(ctx context.Context, tokenID string) error {
	return r.Client.Del(ctx, sessionKeyPrefix+tokenID).Err()
}
