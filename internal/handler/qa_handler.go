package handler

import (
	"github.com/ashwinyue/medi-rag/internal/service"
	"github.com/ashwinyue/medi-rag/internal/service/qa"
	"github.com/gin-gonic/gin"
)

// QAHandler 答题处理器
type QAHandler struct {
	svc *service.Services
}

// NewQAHandler 创建答题处理器
func NewQAHandler(svc *service.Services) *QAHandler {
	return &QAHandler{svc: svc}
}

// QAAnswerRequest 答题请求。qa_id 和 question 至少提供一个
type QAAnswerRequest struct {
	QAID      *uint  `json:"qa_id"`
	Question  string `json:"question"`
	TraceID   string `json:"trace_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// Answer 生成答案并判分
func (h *QAHandler) Answer(c *gin.Context) {
	var req QAAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	record, err := h.svc.QA.AnswerQuestion(c.Request.Context(), &qa.AnswerRequest{
		QAID:      req.QAID,
		Question:  req.Question,
		TraceID:   req.TraceID,
		UserID:    req.UserID,
		SessionID: req.SessionID,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, record)
}

// ScoreRequest 判分请求
type ScoreRequest struct {
	Predicted string   `json:"predicted" binding:"required"`
	Correct   string   `json:"correct" binding:"required"`
	QType     string   `json:"q_type"`
	Keywords  []string `json:"keywords"`
}

// Score 独立判分
func (h *QAHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.svc.QA.ScoreAnswer(req.Predicted, req.Correct, req.QType, req.Keywords)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}
