package security

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimiter 滑动窗口限流器
type RateLimiter struct {
	redis       *redis.Client
	prefix      string
	window      time.Duration
	maxRequests int64
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
}

func NewRateLimiter(redisClient *redis.Client, prefix string, window time.Duration, maxRequests int64) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		prefix:      prefix,
		window:      window,
		maxRequests: maxRequests,
	}
}

// Allow 记录一次请求并判断是否超限；未配置 Redis 时放行
func (l *RateLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	if l == nil || l.redis == nil {
		return &RateLimitResult{Allowed: true, Remaining: -1, ResetTime: now}, nil
	}
	key = l.prefix + key
	windowStart := now.Add(-l.window)

	pipe := l.redis.TxPipeline()

	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	// 添加当前请求
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})

	// 计算当前窗口内的请求数
	countCmd := pipe.ZCard(ctx, key)

	// 设置过期时间
	pipe.Expire(ctx, key, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	count := countCmd.Val()
	result := &RateLimitResult{
		Allowed:   count <= l.maxRequests,
		Remaining: max(l.maxRequests-count, 0),
		ResetTime: now.Add(l.window),
	}
	if !result.Allowed {
		result.RetryAfter = l.window
	}
	return result, nil
}
