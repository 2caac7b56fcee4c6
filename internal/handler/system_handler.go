package handler

import (
	"net/http"

	"github.com/ashwinyue/medi-rag/internal/database"
	"github.com/ashwinyue/medi-rag/internal/service"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/gin-gonic/gin"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
	db  *database.DB
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services, db *database.DB) *SystemHandler {
	return &SystemHandler{svc: svc, db: db}
}

// Health 健康检查
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    h.svc.Config.App.Name,
		"version": h.svc.Config.App.Version,
	})
}

// Ready 就绪检查：数据库连通且至少通用索引存在
func (h *SystemHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			checks["database"] = "down: " + err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
		ready = false
	}

	if h.svc.Search.CheckIndexExists(c.Request.Context(), department.COMMON) {
		checks["elasticsearch"] = "ok"
	} else {
		checks["elasticsearch"] = "common index missing"
		ready = false
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	c.JSON(status, gin.H{"status": state, "checks": checks})
}
