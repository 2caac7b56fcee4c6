package handler

import (
	"strconv"

	"github.com/ashwinyue/medi-rag/internal/repository"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/gin-gonic/gin"
)

// AuditHandler 审计日志查询处理器
type AuditHandler struct {
	repo *repository.AuditRepository
}

// NewAuditHandler 创建审计处理器
func NewAuditHandler(repo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// RAGLogs 查询 RAG 问答日志，按 trace_id 或 department
func (h *AuditHandler) RAGLogs(c *gin.Context) {
	if h.repo == nil {
		badRequest(c, "audit store not configured")
		return
	}

	if traceID := c.Query("trace_id"); traceID != "" {
		logs, err := h.repo.GetRAGLogsByTrace(c.Request.Context(), traceID)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, logs)
		return
	}

	deptParam := c.Query("department")
	if deptParam == "" {
		badRequest(c, "trace_id or department is required")
		return
	}
	dept, ok := department.Parse(deptParam)
	if !ok {
		badRequest(c, "invalid department: "+deptParam)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.repo.GetRAGLogsByDepartment(c.Request.Context(), dept.String(), limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, logs)
}

// Events 查询用户审计事件
func (h *AuditHandler) Events(c *gin.Context) {
	if h.repo == nil {
		badRequest(c, "audit store not configured")
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		badRequest(c, "user_id is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.repo.GetAuditLogsByUser(c.Request.Context(), userID, limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, logs)
}
