package cache

import (
	"context"
	"errors"
	"fmt"

	"cocktail-recommender/internal/infrastructure/config"
	"cocktail-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	// ErrMiss 快取未命中
	ErrMiss = errors.New("cache miss")
	// ErrFull 快取已滿且無法淘汰
	ErrFull = errors.New("cache full")
)

// Store 推薦結果快取
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取；停用時回傳 nil
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewMemoryStore(cfg.Cache), nil
	}

	common.LogError("Unknown cache backend", zap.String("backend", cfg.Cache.Backend))
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}
