package handler

import (
	"errors"
	"net/http"

	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/scoring"
	"github.com/ashwinyue/medi-rag/internal/service/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应 (200)
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Data: data})
}

// badRequest 400 错误响应
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// errorResponse 根据错误类型返回相应的错误响应
func errorResponse(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, types.ErrInvalidArgument), errors.Is(err, scoring.ErrInvalidQuestionType):
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
	case errors.Is(err, types.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, Response{Code: -1, Message: err.Error()})
	case errors.Is(err, llm.ErrCompletion), errors.Is(err, llm.ErrEmbedding):
		c.JSON(http.StatusBadGateway, Response{Code: -1, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
	}
}
