// Package router 设置 HTTP 路由
package router

import (
	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/handler"
	"github.com/ashwinyue/medi-rag/internal/middleware"
	"github.com/ashwinyue/medi-rag/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, cfg *config.Config, redisClient *redis.Client, auditRepo *repository.AuditRepository) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg, redisClient))
	r.Use(middleware.AuditMiddleware(auditRepo))

	// 健康检查
	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// QA 答题
		qaGroup := v1.Group("/qa")
		{
			qaGroup.POST("/answer", h.QA.Answer)
			qaGroup.POST("/score", h.QA.Score)
		}

		// RAG 问答
		ragGroup := v1.Group("/rag")
		{
			ragGroup.POST("/answer", h.RAG.Answer)
			ragGroup.POST("/route", h.RAG.Route)
			ragGroup.GET("/departments", h.RAG.Departments)
		}

		// Ingest 文档索引
		ingestGroup := v1.Group("/ingest")
		{
			ingestGroup.POST("/documents", h.Ingest.IndexDocuments)
		}

		// Audit 审计查询
		auditGroup := v1.Group("/audit")
		{
			auditGroup.GET("/rag-logs", h.Audit.RAGLogs)
			auditGroup.GET("/events", h.Audit.Events)
		}
	}

	return r
}
