package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cookbook-service/internal/api"
	"cookbook-service/internal/core/cache"
	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/core/seed"
	"cookbook-service/internal/infrastructure/config"
	"cookbook-service/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("detect_cycles", cfg.Cookbook.DetectCycles),
		zap.Int("max_depth", cfg.Cookbook.MaxDepth),
		zap.Bool("strict_references", cfg.Cookbook.StrictReferences),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 初始化快取
	startCtx, cancelStart := context.WithTimeout(context.Background(), 5*time.Second)
	cacheStore, err := cache.New(startCtx, cfg)
	cancelStart()
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}

	var summaryCache cookbook.SummaryCache
	if cacheStore != nil {
		defer cacheStore.Close()
		summaryCache = cacheStore
	}

	// 建立食譜庫
	svc := cookbook.NewService(cookbook.NewRegistry(), cookbook.SummarizerOptions{
		StrictReferences: cfg.Cookbook.StrictReferences,
		DetectCycles:     cfg.Cookbook.DetectCycles,
		MaxDepth:         cfg.Cookbook.MaxDepth,
	}, summaryCache)

	if cfg.Cookbook.SeedFile != "" {
		if err := loadSeed(svc, cfg.Cookbook.SeedFile); err != nil {
			common.LogFatal("Failed to load seed file",
				zap.String("path", cfg.Cookbook.SeedFile),
				zap.Error(err),
			)
		}
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, svc, cacheStore)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// loadSeed 啟動時預載種子檔
func loadSeed(svc *cookbook.Service, path string) error {
	requests, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	entries := make([]cookbook.EntryInput, len(requests))
	for i, req := range requests {
		entries[i] = cookbook.NewEntryInput(req)
	}

	n, err := svc.Load(context.Background(), entries)
	if err != nil {
		return err
	}

	common.LogInfo("種子檔已載入",
		zap.String("path", path),
		zap.Int("entries", n),
	)
	return nil
}
