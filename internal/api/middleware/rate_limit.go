package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"cookbook-service/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // 每秒補充的令牌數
	lastTime time.Time
	now      func() time.Time
}

// NewRateLimiter 創建新的限流器，window 內最多 requests 個請求
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastTime).Seconds()
	rl.lastTime = now

	// 按經過時間補充令牌（保留小數，避免頻繁請求時永遠補不到）
	rl.tokens = math.Min(rl.capacity, rl.tokens+elapsed*rl.rate)

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}

	return false
}

// idle 超過 window 未使用的限流器已補滿，可直接丟棄
func (rl *RateLimiter) idle(now time.Time, window time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return now.Sub(rl.lastTime) >= window
}

// clientLimiters 依用戶端 IP 分配限流器
type clientLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*RateLimiter
	requests  int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(requests int, window time.Duration) *clientLimiters {
	return &clientLimiters{
		limiters:  make(map[string]*RateLimiter),
		requests:  requests,
		window:    window,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (cl *clientLimiters) get(clientIP string) *RateLimiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.window {
		for ip, rl := range cl.limiters {
			if rl.idle(now, cl.window) {
				delete(cl.limiters, ip)
			}
		}
		cl.lastSweep = now
	}

	rl, ok := cl.limiters[clientIP]
	if !ok {
		rl = NewRateLimiter(cl.requests, cl.window)
		rl.now = cl.now
		rl.lastTime = now
		cl.limiters[clientIP] = rl
	}
	return rl
}

func (cl *clientLimiters) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.limiters)
}

// RateLimit 限流中間件，每個用戶端 IP 各自計算
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return rateLimit(newClientLimiters(requests, window))
}

func rateLimit(clients *clientLimiters) gin.HandlerFunc {
	window := clients.window

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !clients.get(clientIP).Allow() {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", clientIP),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "Too many requests",
			})
			return
		}

		c.Next()
	}
}
