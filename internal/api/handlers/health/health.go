package health

import (
	"net/http"
	"runtime"
	"time"

	"cookbook-service/internal/core/cache"
	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/infrastructure/config"
	"cookbook-service/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys，由 router 注入
const (
	ConfigKey  = "config"
	ServiceKey = "cookbook_service"
	CacheKey   = "cache_store"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cookbook  cookbook.Stats         `json:"cookbook"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, ok := c.Value(ConfigKey).(*config.Config)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}

	// 獲取食譜庫服務
	svc, ok := c.Value(ServiceKey).(*cookbook.Service)
	if !ok {
		common.LogError("Cookbook service not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cookbook service not found",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Cookbook: svc.Stats(),
	}

	if store, ok := c.Value(CacheKey).(cache.Store); ok && store != nil {
		response.Cache = store.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，服務注入後即可接收請求
func ReadinessCheck(c *gin.Context) {
	if _, ok := c.Value(ServiceKey).(*cookbook.Service); !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
