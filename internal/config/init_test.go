package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Empty(t, cfg.BlockedWords)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("MEDIA_URL", "https://cdn.example.com/media")
	t.Setenv("BLOCKED_WORDS", "murder, , kill ")
	t.Setenv("REDIS_DB", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "https://cdn.example.com/media/", cfg.MediaURL)
	assert.Equal(t, []string{"murder", "kill"}, cfg.BlockedWords)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestFromEnvMissingRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "REDIS_ADDR")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnvRejectsUnknownDrivers(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "postgres")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("STORAGE_DRIVER", "s3")
	_, err = FromEnv()
	require.Error(t, err, "s3 without bucket")
}

func TestWaitForDBSQLite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := WaitForDB(ctx, "sqlite", "file::memory:", 10*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	CloseDB(db, zap.NewNop())
}

func TestWaitForDBGivesUp(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := WaitForDB(ctx, "oracle", "whatever", 10*time.Millisecond, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
