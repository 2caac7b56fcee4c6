package handler

import (
	"github.com/ashwinyue/medi-rag/internal/service"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/rag"
	"github.com/gin-gonic/gin"
)

// RAGHandler RAG 问答处理器
type RAGHandler struct {
	svc *service.Services
}

// NewRAGHandler 创建 RAG 处理器
func NewRAGHandler(svc *service.Services) *RAGHandler {
	return &RAGHandler{svc: svc}
}

// RAGAnswerRequest RAG 问答请求
type RAGAnswerRequest struct {
	Question    string                 `json:"question" binding:"required"`
	Department  string                 `json:"department"`
	PatientInfo map[string]interface{} `json:"patient_info"`
	TraceID     string                 `json:"trace_id"`
}

// Answer 生成基于检索的答案
func (h *RAGHandler) Answer(c *gin.Context) {
	var req RAGAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var dept department.Code
	if req.Department != "" {
		parsed, ok := department.Parse(req.Department)
		if !ok {
			badRequest(c, "invalid department: "+req.Department)
			return
		}
		dept = parsed
	}

	record, err := h.svc.RAG.AnswerWithRAG(c.Request.Context(), &rag.AnswerRequest{
		Question:    req.Question,
		Department:  dept,
		PatientInfo: req.PatientInfo,
		TraceID:     req.TraceID,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, record)
}

// RouteRequest 分诊请求
type RouteRequest struct {
	Question string `json:"question" binding:"required"`
	UseLLM   *bool  `json:"use_llm"`
}

// RouteResponse 分诊响应
type RouteResponse struct {
	Question    string          `json:"question"`
	Department  department.Code `json:"department"`
	IsEmergency bool            `json:"is_emergency"`
}

// Route 问题分诊
func (h *RAGHandler) Route(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	useLLM := true
	if req.UseLLM != nil {
		useLLM = *req.UseLLM
	}

	dept := h.svc.Router.Route(c.Request.Context(), req.Question, useLLM)

	success(c, RouteResponse{
		Question:    req.Question,
		Department:  dept,
		IsEmergency: department.HasEmergencySignal(req.Question),
	})
}

// Departments 科室目录
func (h *RAGHandler) Departments(c *gin.Context) {
	success(c, department.Catalog())
}
