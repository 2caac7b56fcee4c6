package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ashwinyue/medi-rag/internal/model"
	"github.com/ashwinyue/medi-rag/internal/repository"
	"github.com/ashwinyue/medi-rag/internal/security"
	"github.com/gin-gonic/gin"
)

// AuditMiddleware 审计中间件，API 写操作落审计日志。
// 不记录请求体，IP 匿名化；落库失败只记录，不影响响应。
func AuditMiddleware(repo *repository.AuditRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if repo == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		start := time.Now()
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = security.GenerateTraceID()
		}

		c.Next()

		status := "success"
		errorMessage := ""
		if c.Writer.Status() >= http.StatusBadRequest {
			status = "failure"
			errorMessage = strings.Join(c.Errors.Errors(), "; ")
		}

		entry := &model.AuditLog{
			EventType: "api_request",
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			TraceID:   traceID,
			IPAddress: security.AnonymizeIP(c.ClientIP()),
			UserAgent: c.Request.UserAgent(),
			Status:    status,
			Metadata: model.JSON{
				"status_code": c.Writer.Status(),
				"latency_ms":  time.Since(start).Milliseconds(),
			},
			ErrorMessage: errorMessage,
		}

		if err := repo.CreateAuditLog(c.Request.Context(), entry); err != nil {
			log.Printf("Warning: failed to save audit log: trace=%s err=%v", traceID, err)
		}
	}
}
