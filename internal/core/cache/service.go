package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/infrastructure/config"
	"cookbook-service/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 儲存彙總快取，多個實例可共用
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(ctx context.Context, redisCfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", "redis"),
		zap.String("addr", redisCfg.Addr),
		zap.Duration("存活時間", ttl),
	)

	return &RedisStore{
		client: client,
		prefix: redisCfg.KeyPrefix,
		ttl:    ttl,
	}, nil
}

// Get 獲取緩存，任何錯誤都視為未命中
func (s *RedisStore) Get(ctx context.Context, key string) (*cookbook.Summary, bool) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("failed to get cache", zap.String("鍵", key), zap.Error(err))
		}
		return nil, false
	}

	var summary cookbook.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		common.LogWarn("failed to unmarshal cache", zap.String("鍵", key), zap.Error(err))
		return nil, false
	}

	return &summary, true
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, summary *cookbook.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// GetStats 獲取緩存統計信息
func (s *RedisStore) GetStats() map[string]interface{} {
	stats := s.client.PoolStats()
	return map[string]interface{}{
		"backend":     "redis",
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
	}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
