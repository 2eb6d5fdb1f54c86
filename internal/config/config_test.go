package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "STORAGE", "DB_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "JWT_SECRET", "JWT_TTL", "BATCH_SIZE", "WORKER_POLL_INTERVAL"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "memory")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DSN", "user:pw@tcp(db:3306)/flock?parseTime=true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BATCH_SIZE", "nope")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StorageMySQL, cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestFromEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("STORAGE", "postgres")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "STORAGE")
}
