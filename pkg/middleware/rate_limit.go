package middleware

import (
	"context"
	"strconv"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/response"
	"VideoTube.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// RateLimit limits requests per client IP for one route group. Redis errors fail open.
func RateLimit(limiter *security.RateLimiter, name string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		res, err := limiter.Allow(ctx, name+":"+c.ClientIP())
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable, allowing request: %v", err)
			c.Next(ctx)
			return
		}
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
			response.Abort(ctx, c, errno.TooManyRequestsErr)
			return
		}
		c.Next(ctx)
	}
}
