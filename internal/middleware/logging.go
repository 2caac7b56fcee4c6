// Package middleware 提供 HTTP 中间件
package middleware

import (
	"log"
	"time"

	"github.com/ashwinyue/medi-rag/internal/security"
	"github.com/gin-gonic/gin"
)

// LoggingMiddleware 日志中间件，客户端 IP 匿名化后输出
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		log.Printf("[%s] %s %s | Status: %d | IP: %s | Latency: %v",
			c.Request.Method,
			path,
			query,
			c.Writer.Status(),
			security.AnonymizeIP(c.ClientIP()),
			latency,
		)
	}
}
