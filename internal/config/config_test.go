package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/asset-import/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("IMPORT_WORKERS", "")
	t.Setenv("IMPORT_CHUNK_SIZE", "")
	t.Setenv("HTTP_RATE_LIMIT", "")
	t.Setenv("AUTO_MIGRATE", "")

	cfg, err := config.Load(false)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 100, cfg.ChunkSize)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, 20.0, cfg.RateLimit)
	assert.Equal(t, "10M", cfg.BodyLimit)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/imports")
	t.Setenv("IMPORT_WORKERS", "50")
	t.Setenv("IMPORT_CHUNK_SIZE", "250")
	t.Setenv("HTTP_RATE_LIMIT", "not-a-number")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := config.Load(true)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/imports", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 250, cfg.ChunkSize)
	assert.Equal(t, 20.0, cfg.RateLimit)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := config.Load(true)
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("IMPORT_CHUNK_SIZE", "-1")
	_, err = config.Load(false)
	assert.ErrorContains(t, err, "IMPORT_CHUNK_SIZE")
}
