package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository نگهداری توکن‌های صادرشده (jti -> userID)
type SessionRepository interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Find(ctx context.Context, tokenID string) (string, error)
	Delete(ctx context.Context, tokenID string) error
}
