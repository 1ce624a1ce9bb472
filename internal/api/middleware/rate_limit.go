package middleware

import (
	"fmt"
	"time"

	"cocktail-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 建立 token bucket：每個 window 補滿 requests 個權杖
func NewRateLimiter(requests int, window time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(requests)/window.Seconds()), requests)
}

// RateLimit 限流中間件
func RateLimit(limiter *rate.Limiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.Burst()))

		if !limiter.Allow() {
			rateLimitRejects.Inc()
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(common.ErrTooManyRequests.Status, common.ErrTooManyRequests.Response(false))
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", int(limiter.Tokens())))
		c.Next()
	}
}
