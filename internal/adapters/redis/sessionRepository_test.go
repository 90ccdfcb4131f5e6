package redis

import (
	"context"
	"testing"
	"time"

	sessionPort "socialfeed/internal/ports/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*SessionRepositoryRedis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepositoryRedis(client), mr
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "jti-1", "user-1", time.Hour))
	assert.True(t, mr.Exists("session:jti-1"))

	userID, err := repo.Find(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, repo.Delete(ctx, "jti-1"))
	_, err = repo.Find(ctx, "jti-1")
	assert.ErrorIs(t, err, sessionPort.ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "jti-2", "user-2", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Find(ctx, "jti-2")
	assert.ErrorIs(t, err, sessionPort.ErrSessionNotFound)
}
