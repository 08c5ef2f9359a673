package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Cookbook.DetectCycles)
	assert.False(t, cfg.Cookbook.StrictReferences)
	assert.Equal(t, 0, cfg.Cookbook.MaxDepth)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "cookbook", cfg.Redis.KeyPrefix)
	assert.Equal(t, int64(1<<20), cfg.BodyLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DETECT_CYCLES", "false")
	t.Setenv("MAX_DEPTH", "12")
	t.Setenv("STRICT_REFERENCES", "true")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("APP_REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Cookbook.DetectCycles)
	assert.Equal(t, 12, cfg.Cookbook.MaxDepth)
	assert.True(t, cfg.Cookbook.StrictReferences)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unknown cache backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unknown cache backend")
	})

	t.Run("negative max depth", func(t *testing.T) {
		t.Setenv("MAX_DEPTH", "-1")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "max depth")
	})

	t.Run("zero rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_REQUESTS", "0")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "rate limit requests")
	})
}

func TestValidateConfig_CacheDisabledSkipsCacheChecks(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: 1, RequestTimeout: time.Second},
		Cache:     CacheConfig{Enabled: false, Backend: "whatever"},
		BodyLimit: 1,
	}
	assert.NoError(t, validateConfig(cfg))
}
