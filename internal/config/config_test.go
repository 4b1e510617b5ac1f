package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 5, cfg.RevealPauseSeconds)
	assert.Empty(t, cfg.StatsRedisAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REVEAL_PAUSE_SECONDS", "8")
	t.Setenv("STATS_REDIS_ADDR", "localhost:6380")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, 8, cfg.RevealPauseSeconds)
	assert.Equal(t, "localhost:6380", cfg.StatsRedisAddr)
}

func TestLoadIgnoresInvalidInt(t *testing.T) {
	t.Setenv("REVEAL_PAUSE_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 5, cfg.RevealPauseSeconds)
}
