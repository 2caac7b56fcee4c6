// Package qa 实现答题与判分编排
package qa

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/model"
	"github.com/ashwinyue/medi-rag/internal/security"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/scoring"
	"github.com/ashwinyue/medi-rag/internal/service/types"
	"gorm.io/gorm"
)

// QAStore 题库访问接口
type QAStore interface {
	GetByID(ctx context.Context, id uint) (*model.QAMaster, error)
	CreateAttemptLog(ctx context.Context, entry *model.QAAttemptLog) error
}

// AnswerRequest 答题请求。QAID 和 Question 至少提供一个
type AnswerRequest struct {
	QAID      *uint
	Question  string
	TraceID   string
	UserID    string
	SessionID string
}

// Meta 响应元信息
type Meta struct {
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
	LatencyMS     int64  `json:"latency_ms"`
	QType         string `json:"q_type,omitempty"`
	TokensUsed    int    `json:"tokens_used,omitempty"`
}

// AnswerRecord 答题结果。无标准答案时 Scoring 为 nil
type AnswerRecord struct {
	TraceID         string          `json:"trace_id"`
	QAID            *uint           `json:"qa_id,omitempty"`
	Question        string          `json:"question"`
	PredictedAnswer string          `json:"predicted_answer"`
	CorrectAnswer   string          `json:"correct_answer,omitempty"`
	Scoring         *scoring.Result `json:"scoring,omitempty"`
	Meta            Meta            `json:"meta"`
}

// Service 答题服务
type Service struct {
	cfg    *config.Config
	llm    *llm.Client
	scorer *scoring.Scorer
	store  QAStore
}

// NewService 创建答题服务
func NewService(cfg *config.Config, llmClient *llm.Client, scorer *scoring.Scorer, store QAStore) *Service {
	return &Service{
		cfg:    cfg,
		llm:    llmClient,
		scorer: scorer,
		store:  store,
	}
}

// AnswerQuestion 生成答案并判分。
// 按 QAID 查题时用库内题干和标准答案，直接给题干时只生成不判分。
func (s *Service) AnswerQuestion(ctx context.Context, req *AnswerRequest) (*AnswerRecord, error) {
	start := time.Now()

	traceID := req.TraceID
	if traceID == "" {
		traceID = security.GenerateTraceID()
	}

	question, reference, qType, qaID, err := s.resolveQuestion(ctx, req)
	if err != nil {
		return nil, err
	}

	// 1. 答案生成
	completion, err := s.llm.Complete(ctx, buildQAPrompt(question))
	if err != nil {
		log.Printf("answer generation error: trace=%s err=%v", traceID, err)
		return nil, err
	}
	predicted := strings.TrimSpace(completion.Content)

	// 2. 判分：仅当存在标准答案
	var result *scoring.Result
	if reference != "" {
		result, err = s.scorer.Score(predicted, reference, scoring.QuestionType(qType))
		if err != nil {
			log.Printf("scoring error: trace=%s qa_id=%v err=%v", traceID, req.QAID, err)
			return nil, err
		}
	}

	latencyMS := time.Since(start).Milliseconds()

	record := &AnswerRecord{
		TraceID:         traceID,
		QAID:            qaID,
		Question:        question,
		PredictedAnswer: predicted,
		CorrectAnswer:   reference,
		Scoring:         result,
		Meta: Meta{
			Model:         completion.Model,
			PromptVersion: s.cfg.Prompt.Version,
			LatencyMS:     latencyMS,
			QType:         qType,
			TokensUsed:    completion.TokensUsed,
		},
	}

	// 3. 日志落库：失败只记录，不影响响应
	s.saveAttemptLog(ctx, req, record)

	isCorrect := "n/a"
	if result != nil {
		isCorrect = fmt.Sprintf("%t", result.IsCorrect)
	}
	log.Printf("qa completed: trace=%s qa_id=%v is_correct=%s latency_ms=%d",
		traceID, qaID, isCorrect, latencyMS)

	return record, nil
}

// ScoreAnswer 独立判分入口，不走答案生成
func (s *Service) ScoreAnswer(predicted, reference string, qType string, keywords []string) (*scoring.Result, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("%w: correct answer is empty", types.ErrInvalidArgument)
	}

	if len(keywords) > 0 {
		return s.scorer.ScoreWithPartialCredit(predicted, reference, keywords), nil
	}
	return s.scorer.Score(predicted, reference, scoring.QuestionType(qType))
}

// resolveQuestion 解析题目来源：QAID 优先，否则直接使用题干
func (s *Service) resolveQuestion(ctx context.Context, req *AnswerRequest) (question, reference, qType string, qaID *uint, err error) {
	if req.QAID != nil {
		if s.store == nil {
			return "", "", "", nil, fmt.Errorf("%w: qa %d", types.ErrNotFound, *req.QAID)
		}
		qa, err := s.store.GetByID(ctx, *req.QAID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", "", "", nil, fmt.Errorf("%w: qa %d", types.ErrNotFound, *req.QAID)
			}
			return "", "", "", nil, fmt.Errorf("load qa %d: %w", *req.QAID, err)
		}
		return qa.Question, qa.Answer, qa.QType, &qa.ID, nil
	}

	question = security.SanitizeInput(req.Question, s.cfg.Security.MaxQuestionLength)
	if question == "" {
		return "", "", "", nil, fmt.Errorf("%w: qa_id or question required", types.ErrInvalidArgument)
	}
	return question, "", string(scoring.ShortAnswer), nil, nil
}

// saveAttemptLog 保存答题日志，任何失败都吞掉
func (s *Service) saveAttemptLog(ctx context.Context, req *AnswerRequest, record *AnswerRecord) {
	if s.store == nil {
		return
	}
	if ctx.Err() != nil {
		log.Printf("Warning: skip qa log on cancelled request: trace=%s", record.TraceID)
		return
	}

	entry := &model.QAAttemptLog{
		QAID:            record.QAID,
		Question:        record.Question,
		PredictedAnswer: record.PredictedAnswer,
		CorrectAnswer:   record.CorrectAnswer,
		Model:           record.Meta.Model,
		PromptVersion:   record.Meta.PromptVersion,
		LatencyMS:       int(record.Meta.LatencyMS),
		TraceID:         record.TraceID,
		UserID:          req.UserID,
		SessionID:       req.SessionID,
	}
	if record.Scoring != nil {
		isCorrect := record.Scoring.IsCorrect
		score := record.Scoring.Score
		entry.IsCorrect = &isCorrect
		entry.Score = &score
	}
	if record.Meta.TokensUsed > 0 {
		tokens := record.Meta.TokensUsed
		entry.TokensUsed = &tokens
	}

	if err := s.store.CreateAttemptLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to save qa log: trace=%s err=%v", record.TraceID, err)
	}
}
