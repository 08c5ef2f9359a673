package cache

import (
	"context"
	"fmt"

	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/infrastructure/config"
)

// Store 可供健康檢查與關閉的彙總快取
type Store interface {
	cookbook.SummaryCache
	GetStats() map[string]interface{}
	Close() error
}

// New 依設定建立快取，停用時回傳 nil
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		return NewManager(cfg.Cache.TTL, cfg.Cache.CleanupInterval), nil
	case config.CacheBackendRedis:
		store, err := NewRedisStore(ctx, cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}
