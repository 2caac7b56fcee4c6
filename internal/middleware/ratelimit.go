package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware 基于 Redis 固定窗口的限流中间件。
// Redis 不可用时放行，限流不能成为单点。
func RateLimitMiddleware(cfg *config.Config, client *redis.Client) gin.HandlerFunc {
	limit := cfg.Security.RateLimit.RequestsPerMinute

	return func(c *gin.Context) {
		if !cfg.Security.RateLimit.Enabled || client == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/60)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("Warning: rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, time.Minute).Err(); err != nil {
				log.Printf("Warning: failed to set rate limit expiry: %v", err)
			}
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    -1,
				"message": "too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
