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
	assert.Equal(t, "embedded", cfg.Catalog.Source)
	assert.Equal(t, "recipes.json", cfg.Catalog.RecipesFile)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Zero(t, cfg.DedupWindow)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_SOURCE", "https://example.com/catalog")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("APP_CACHE_TTL", "5m")
	t.Setenv("RATE_LIMIT_REQUESTS", "7")
	t.Setenv("DEDUP_WINDOW", "2s")
	t.Setenv("APP_APP_DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com/catalog", cfg.Catalog.Source)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 7, cfg.RateLimit.Requests)
	assert.Equal(t, 2*time.Second, cfg.DedupWindow)
	assert.True(t, cfg.App.Debug)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache backend")
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080, MaxBodyBytes: 1024},
		Catalog:   CatalogConfig{RecipesFile: "r.json", ProductsFile: "p.json"},
		Cache:     CacheConfig{Enabled: true, Backend: CacheBackendMemory, MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Minute},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 1, Window: time.Second},
		Metrics:   MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "no body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
		{name: "no recipes file", mutate: func(c *Config) { c.Catalog.RecipesFile = "" }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Catalog.Retries = -1 }, wantErr: true},
		{name: "zero cache size", mutate: func(c *Config) { c.Cache.MaxSize = 0 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: true},
		{name: "cache disabled skips checks", mutate: func(c *Config) { c.Cache = CacheConfig{} }},
		{name: "redis without addr", mutate: func(c *Config) { c.Cache.Backend = CacheBackendRedis }, wantErr: true},
		{name: "rate limit zero", mutate: func(c *Config) { c.RateLimit.Requests = 0 }, wantErr: true},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
