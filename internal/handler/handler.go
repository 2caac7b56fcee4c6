// Package handler 提供 HTTP 处理器
package handler

import (
	"github.com/ashwinyue/medi-rag/internal/database"
	"github.com/ashwinyue/medi-rag/internal/repository"
	"github.com/ashwinyue/medi-rag/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	QA     *QAHandler
	RAG    *RAGHandler
	Ingest *IngestHandler
	Audit  *AuditHandler
	System *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services, repos *repository.Repositories, db *database.DB) *Handlers {
	var auditRepo *repository.AuditRepository
	if repos != nil {
		auditRepo = repos.Audit
	}

	return &Handlers{
		QA:     NewQAHandler(svc),
		RAG:    NewRAGHandler(svc),
		Ingest: NewIngestHandler(svc),
		Audit:  NewAuditHandler(auditRepo),
		System: NewSystemHandler(svc, db),
	}
}
