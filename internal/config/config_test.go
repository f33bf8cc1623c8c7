package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Empty(t, cfg.Rules.Dir)
	assert.Empty(t, cfg.Rules.DefaultsPath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.example:6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RULES_DIR", "/data/rules")
	t.Setenv("RULESET_DEFAULTS", "/data/defaults.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.example:6380", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "/data/rules", cfg.Rules.Dir)
	assert.Equal(t, "/data/defaults.yaml", cfg.Rules.DefaultsPath)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
}
