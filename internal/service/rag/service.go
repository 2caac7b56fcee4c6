// Package rag 实现科室分诊 + 检索增强的医疗问答编排
package rag

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/model"
	"github.com/ashwinyue/medi-rag/internal/security"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/routing"
	"github.com/ashwinyue/medi-rag/internal/service/search"
	"github.com/ashwinyue/medi-rag/internal/service/types"
	"github.com/cloudwego/eino/schema"
)

const referenceContentLimit = 500

// AuditSink RAG 日志落库接口
type AuditSink interface {
	CreateRAGLog(ctx context.Context, log *model.RAGAttemptLog) error
}

// AnswerRequest RAG 问答请求
type AnswerRequest struct {
	Question    string
	Department  department.Code // 空值表示自动分诊
	PatientInfo map[string]interface{}
	TraceID     string
}

// Reference 参考文档
type Reference struct {
	DocID    string                 `json:"doc_id"`
	Title    string                 `json:"title,omitempty"`
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Source   string                 `json:"source,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Meta 响应元信息
type Meta struct {
	Model              string  `json:"model"`
	PromptVersion      string  `json:"prompt_version"`
	LatencyMS          int64   `json:"latency_ms"`
	DocumentsRetrieved int     `json:"documents_retrieved"`
	AvgDocScore        float64 `json:"avg_doc_score"`
	TokensUsed         int     `json:"tokens_used,omitempty"`
}

// AnswerRecord RAG 问答结果
type AnswerRecord struct {
	TraceID    string          `json:"trace_id"`
	Question   string          `json:"question"`
	Department department.Code `json:"department"`
	Answer     string          `json:"answer"`
	References []Reference     `json:"references"`
	Confidence *float64        `json:"confidence"`
	Warnings   []string        `json:"warnings"`
	Meta       Meta            `json:"meta"`
}

// Service RAG 问答服务
type Service struct {
	cfg    *config.Config
	llm    *llm.Client
	search *search.Service
	router *routing.Service
	audit  AuditSink
}

// NewService 创建 RAG 服务
func NewService(cfg *config.Config, llmClient *llm.Client, searchSvc *search.Service, router *routing.Service, audit AuditSink) *Service {
	return &Service{
		cfg:    cfg,
		llm:    llmClient,
		search: searchSvc,
		router: router,
		audit:  audit,
	}
}

// AnswerWithRAG 生成基于检索的答案。
// 分类与检索失败降级，向量化与生成失败返回错误。
func (s *Service) AnswerWithRAG(ctx context.Context, req *AnswerRequest) (*AnswerRecord, error) {
	start := time.Now()

	question := security.SanitizeInput(req.Question, s.cfg.Security.MaxQuestionLength)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", types.ErrInvalidArgument)
	}

	traceID := req.TraceID
	if traceID == "" {
		traceID = security.GenerateTraceID()
	}

	// 1. 科室分诊
	dept := req.Department
	if dept == "" {
		dept = s.router.Route(ctx, question, true)
		log.Printf("department classified: trace=%s department=%s", traceID, dept)
	}

	// 2. 问题向量化
	vector, err := s.llm.Embed(ctx, question)
	if err != nil {
		log.Printf("embedding error: trace=%s err=%v", traceID, err)
		return nil, err
	}

	// 3. 文档检索
	passages := s.search.SearchWithFallback(ctx, vector, dept, s.cfg.Search.TopK)

	warnings := []string{}
	if len(passages) == 0 {
		warnings = append(warnings, noDocumentsWarning)
		log.Printf("Warning: no documents found: trace=%s department=%s", traceID, dept)
	}

	// 4. 答案生成
	messages := buildRAGPrompt(question, dept, passages)
	if len(req.PatientInfo) > 0 {
		messages = append(messages, schema.SystemMessage("환자 정보: "+formatPatientInfo(req.PatientInfo)))
	}

	completion, err := s.llm.Complete(ctx, messages)
	if err != nil {
		log.Printf("answer generation error: trace=%s err=%v", traceID, err)
		return nil, err
	}

	// 5. 置信度与安全警告
	var confidence *float64
	avgScore := 0.0
	if len(passages) > 0 {
		sum := 0.0
		for _, p := range passages {
			sum += p.Score
		}
		avgScore = sum / float64(len(passages))
		c := avgScore
		if c > 1.0 {
			c = 1.0
		}
		confidence = &c
	}

	emergency, safetyWarnings := checkSafety(question, completion.Content, dept)
	warnings = append(warnings, safetyWarnings...)
	if emergency {
		warnings = append([]string{emergencyWarning}, warnings...)
	}

	latencyMS := time.Since(start).Milliseconds()

	record := &AnswerRecord{
		TraceID:    traceID,
		Question:   question,
		Department: dept,
		Answer:     completion.Content,
		References: buildReferences(passages),
		Confidence: confidence,
		Warnings:   warnings,
		Meta: Meta{
			Model:              completion.Model,
			PromptVersion:      s.cfg.Prompt.Version,
			LatencyMS:          latencyMS,
			DocumentsRetrieved: len(passages),
			AvgDocScore:        avgScore,
			TokensUsed:         completion.TokensUsed,
		},
	}

	// 6. 审计日志：失败只记录，不影响响应；请求取消时跳过
	s.saveAttemptLog(ctx, record, passages)

	log.Printf("rag completed: trace=%s department=%s docs=%d latency_ms=%d",
		traceID, dept, len(passages), latencyMS)

	return record, nil
}

// buildReferences 检索结果转参考文档，正文截断
func buildReferences(passages []*search.Passage) []Reference {
	references := make([]Reference, 0, len(passages))
	for _, p := range passages {
		content := p.Content
		if runes := []rune(content); len(runes) > referenceContentLimit {
			content = string(runes[:referenceContentLimit])
		}
		references = append(references, Reference{
			DocID:    p.DocID,
			Title:    p.Title,
			Content:  content,
			Score:    p.Score,
			Source:   p.Source,
			Metadata: p.Metadata,
		})
	}
	return references
}

// saveAttemptLog 保存 RAG 日志，任何失败都吞掉
func (s *Service) saveAttemptLog(ctx context.Context, record *AnswerRecord, passages []*search.Passage) {
	if s.audit == nil {
		return
	}
	if ctx.Err() != nil {
		log.Printf("Warning: skip rag log on cancelled request: trace=%s", record.TraceID)
		return
	}

	references := make(model.JSONArray, 0, len(record.References))
	for _, ref := range record.References {
		references = append(references, map[string]interface{}{
			"doc_id": ref.DocID,
			"title":  ref.Title,
			"score":  ref.Score,
			"source": ref.Source,
		})
	}

	count := len(passages)
	entry := &model.RAGAttemptLog{
		Question:           record.Question,
		Department:         record.Department.String(),
		Answer:             record.Answer,
		References:         references,
		Confidence:         record.Confidence,
		Model:              record.Meta.Model,
		PromptVersion:      record.Meta.PromptVersion,
		LatencyMS:          int(record.Meta.LatencyMS),
		SearchResultsCount: &count,
		TraceID:            record.TraceID,
	}
	if record.Meta.TokensUsed > 0 {
		tokens := record.Meta.TokensUsed
		entry.TokensUsed = &tokens
	}
	if count > 0 {
		avg := record.Meta.AvgDocScore
		entry.AvgSearchScore = &avg
	}

	if err := s.audit.CreateRAGLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to save rag log: trace=%s err=%v", record.TraceID, err)
	}
}
