package api

import (
	"fmt"
	"time"

	cookbookHandler "cookbook-service/internal/api/handlers/cookbook"
	"cookbook-service/internal/api/handlers/health"
	"cookbook-service/internal/api/middleware"
	"cookbook-service/internal/core/cache"
	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/infrastructure/config"
	"cookbook-service/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，cacheStore 可為 nil
func SetupRouter(cfg *config.Config, svc *cookbook.Service, cacheStore cache.Store) (*gin.Engine, error) {
	if cfg == nil || svc == nil {
		return nil, fmt.Errorf("config and cookbook service are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.BodyLimit))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 注入健康檢查所需的依賴
	router.Use(func(c *gin.Context) {
		c.Set(health.ConfigKey, cfg)
		c.Set(health.ServiceKey, svc)
		if cacheStore != nil {
			c.Set(health.CacheKey, cacheStore)
		}
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// 食譜庫路由
	h := cookbookHandler.NewHandler(svc)
	router.POST("/parse", h.HandleParse)
	router.POST("/entry", h.HandleCreateEntry)
	router.GET("/summary", h.HandleSummary)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", cacheStore != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.BodyLimit),
	)

	return router, nil
}
