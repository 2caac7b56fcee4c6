package handler

import (
	"github.com/ashwinyue/medi-rag/internal/service"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/ingest"
	"github.com/gin-gonic/gin"
)

// IngestHandler 文档索引处理器
type IngestHandler struct {
	svc *service.Services
}

// NewIngestHandler 创建文档索引处理器
func NewIngestHandler(svc *service.Services) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// IngestDocument 待索引文档
type IngestDocument struct {
	Title      string                 `json:"title"`
	Content    string                 `json:"content" binding:"required"`
	Source     string                 `json:"source"`
	Department string                 `json:"department" binding:"required"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// IngestRequest 索引请求。use_samples 为真时索引内置示例文档
type IngestRequest struct {
	Documents  []IngestDocument `json:"documents"`
	UseSamples bool             `json:"use_samples"`
}

// IndexDocuments 索引医疗文档
func (h *IngestHandler) IndexDocuments(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if req.UseSamples {
		results, err := h.svc.Ingest.SeedSamples(c.Request.Context())
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, results)
		return
	}

	if len(req.Documents) == 0 {
		badRequest(c, "documents are required")
		return
	}

	docs := make([]*ingest.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		dept, ok := department.Parse(d.Department)
		if !ok {
			badRequest(c, "invalid department: "+d.Department)
			return
		}
		docs = append(docs, &ingest.Document{
			Title:      d.Title,
			Content:    d.Content,
			Source:     d.Source,
			Department: dept,
			Metadata:   d.Metadata,
		})
	}

	results, err := h.svc.Ingest.IndexDocuments(c.Request.Context(), docs)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, results)
}
