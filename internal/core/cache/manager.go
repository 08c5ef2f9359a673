package cache

import (
	"context"
	"sync/atomic"
	"time"

	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/pkg/common"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Manager 記憶體彙總快取
type Manager struct {
	cache *gocache.Cache
	ttl   time.Duration
	stats cacheStats
}

// cacheStats 緩存統計
type cacheStats struct {
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// NewManager 創建新的快取管理器
func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	m := &Manager{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", "memory"),
		zap.Duration("存活時間", ttl),
		zap.Duration("清理間隔", cleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, key string) (*cookbook.Summary, bool) {
	value, found := m.cache.Get(key)
	if !found {
		m.stats.misses.Add(1)
		common.LogDebug("快取未命中", zap.String("鍵", key))
		return nil, false
	}

	summary, ok := value.(*cookbook.Summary)
	if !ok {
		m.stats.errors.Add(1)
		common.LogError("wrong type assertion when getting value", zap.String("鍵", key))
		return nil, false
	}

	m.stats.hits.Add(1)
	common.LogDebug("快取命中", zap.String("鍵", key))
	return summary, true
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, key string, summary *cookbook.Summary) error {
	m.cache.Set(key, summary, m.ttl)
	return nil
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	hits := m.stats.hits.Load()
	misses := m.stats.misses.Load()

	ratio := 0.0
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}

	return map[string]interface{}{
		"backend":   "memory",
		"size":      m.cache.ItemCount(),
		"hits":      hits,
		"misses":    misses,
		"errors":    m.stats.errors.Load(),
		"hit_ratio": ratio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	m.cache.Flush()
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits.Load()),
		zap.Int64("未命中次數", m.stats.misses.Load()),
	)
	return nil
}
