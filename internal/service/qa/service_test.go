package qa

import (
	"context"
	"errors"
	"testing"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/model"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/scoring"
	"github.com/ashwinyue/medi-rag/internal/service/types"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"gorm.io/gorm"
)

// ========== 测试用 Mock ==========

type mockChatModel struct {
	response string
	err      error
	calls    int
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: m.response,
		ResponseMeta: &schema.ResponseMeta{
			Usage: &schema.TokenUsage{TotalTokens: 42},
		},
	}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in mock")
}

type mockQAStore struct {
	qa        *model.QAMaster
	getErr    error
	createErr error
	logs      []*model.QAAttemptLog
}

func (m *mockQAStore) GetByID(ctx context.Context, id uint) (*model.QAMaster, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.qa == nil || m.qa.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.qa, nil
}

func (m *mockQAStore) CreateAttemptLog(ctx context.Context, entry *model.QAAttemptLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.logs = append(m.logs, entry)
	return nil
}

func newTestService(chat *mockChatModel, store *mockQAStore) *Service {
	cfg := &config.Config{
		Scoring:  config.ScoringConfig{ExactMatchThreshold: 0.95, SimilarityThreshold: 0.8},
		Security: config.SecurityConfig{MaxQuestionLength: 2000},
		Prompt:   config.PromptConfig{Version: "1.0.0"},
	}
	llmClient := llm.NewClient(chat, nil, "gpt-4o-mini", 0.3, 2000)
	return NewService(cfg, llmClient, scoring.NewScorer(cfg), store)
}

func uintPtr(v uint) *uint { return &v }

// ========== AnswerQuestion ==========

func TestAnswerQuestionByIDMultipleChoice(t *testing.T) {
	chat := &mockChatModel{response: "3번이 정답입니다"}
	store := &mockQAStore{
		qa: &model.QAMaster{
			ID:       7,
			QType:    "multiple_choice",
			Question: "당뇨병 진단 기준으로 옳은 것은?",
			Answer:   "3",
		},
	}
	svc := newTestService(chat, store)

	record, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{QAID: uintPtr(7)})
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v", err)
	}

	if record.QAID == nil || *record.QAID != 7 {
		t.Errorf("QAID = %v, want 7", record.QAID)
	}
	if record.Question != "당뇨병 진단 기준으로 옳은 것은?" {
		t.Errorf("Question = %q", record.Question)
	}
	if record.CorrectAnswer != "3" {
		t.Errorf("CorrectAnswer = %q, want %q", record.CorrectAnswer, "3")
	}
	if record.Scoring == nil {
		t.Fatal("Scoring = nil, want result")
	}
	if !record.Scoring.IsCorrect || record.Scoring.Score != 1.0 {
		t.Errorf("Scoring = {IsCorrect:%v Score:%v}, want correct with 1.0",
			record.Scoring.IsCorrect, record.Scoring.Score)
	}
	if record.Meta.QType != "multiple_choice" {
		t.Errorf("Meta.QType = %q", record.Meta.QType)
	}
	if record.Meta.TokensUsed != 42 {
		t.Errorf("Meta.TokensUsed = %d, want 42", record.Meta.TokensUsed)
	}

	if len(store.logs) != 1 {
		t.Fatalf("attempt logs = %d, want 1", len(store.logs))
	}
	entry := store.logs[0]
	if entry.QAID == nil || *entry.QAID != 7 {
		t.Errorf("log QAID = %v, want 7", entry.QAID)
	}
	if entry.IsCorrect == nil || !*entry.IsCorrect {
		t.Errorf("log IsCorrect = %v, want true", entry.IsCorrect)
	}
	if entry.Score == nil || *entry.Score != 1.0 {
		t.Errorf("log Score = %v, want 1.0", entry.Score)
	}
	if entry.TraceID == "" {
		t.Error("log TraceID is empty")
	}
}

func TestAnswerQuestionByIDShortAnswer(t *testing.T) {
	chat := &mockChatModel{response: "  인슐린 저항성  "}
	store := &mockQAStore{
		qa: &model.QAMaster{
			ID:       3,
			QType:    "short_answer",
			Question: "제2형 당뇨병의 핵심 병태생리는?",
			Answer:   "인슐린 저항성",
		},
	}
	svc := newTestService(chat, store)

	record, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{QAID: uintPtr(3)})
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v", err)
	}

	if record.PredictedAnswer != "인슐린 저항성" {
		t.Errorf("PredictedAnswer = %q, want trimmed answer", record.PredictedAnswer)
	}
	if record.Scoring == nil || !record.Scoring.IsCorrect {
		t.Errorf("Scoring = %+v, want correct", record.Scoring)
	}
}

func TestAnswerQuestionNotFound(t *testing.T) {
	chat := &mockChatModel{response: "답"}
	store := &mockQAStore{}
	svc := newTestService(chat, store)

	_, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{QAID: uintPtr(99)})
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat calls = %d, want 0", chat.calls)
	}
}

func TestAnswerQuestionDirectText(t *testing.T) {
	chat := &mockChatModel{response: "충분한 수분 섭취와 휴식이 필요합니다"}
	store := &mockQAStore{}
	svc := newTestService(chat, store)

	record, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{
		Question: "감기에 걸렸을 때 어떻게 해야 하나요?",
	})
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v", err)
	}

	if record.QAID != nil {
		t.Errorf("QAID = %v, want nil", record.QAID)
	}
	if record.CorrectAnswer != "" {
		t.Errorf("CorrectAnswer = %q, want empty", record.CorrectAnswer)
	}
	if record.Scoring != nil {
		t.Errorf("Scoring = %+v, want nil without reference answer", record.Scoring)
	}

	if len(store.logs) != 1 {
		t.Fatalf("attempt logs = %d, want 1", len(store.logs))
	}
	if store.logs[0].IsCorrect != nil || store.logs[0].Score != nil {
		t.Error("log scoring fields should be nil without reference answer")
	}
}

func TestAnswerQuestionEmptyRequest(t *testing.T) {
	svc := newTestService(&mockChatModel{response: "답"}, &mockQAStore{})

	for _, question := range []string{"", "   ", "\t\n"} {
		_, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{Question: question})
		if !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("AnswerQuestion(%q) error = %v, want ErrInvalidArgument", question, err)
		}
	}
}

func TestAnswerQuestionCompletionFailure(t *testing.T) {
	chat := &mockChatModel{err: errors.New("api unavailable")}
	store := &mockQAStore{}
	svc := newTestService(chat, store)

	_, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{Question: "질문입니다"})
	if !errors.Is(err, llm.ErrCompletion) {
		t.Errorf("error = %v, want ErrCompletion", err)
	}
	if len(store.logs) != 0 {
		t.Errorf("attempt logs = %d, want 0 on failure", len(store.logs))
	}
}

func TestAnswerQuestionLogFailureSwallowed(t *testing.T) {
	chat := &mockChatModel{response: "답변"}
	store := &mockQAStore{createErr: errors.New("db down")}
	svc := newTestService(chat, store)

	record, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{Question: "질문입니다"})
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v, log failure must not propagate", err)
	}
	if record.PredictedAnswer != "답변" {
		t.Errorf("PredictedAnswer = %q", record.PredictedAnswer)
	}
}

func TestAnswerQuestionUserAndSessionPersisted(t *testing.T) {
	chat := &mockChatModel{response: "답변"}
	store := &mockQAStore{}
	svc := newTestService(chat, store)

	_, err := svc.AnswerQuestion(context.Background(), &AnswerRequest{
		Question:  "질문입니다",
		TraceID:   "req_fixed",
		UserID:    "user_abc",
		SessionID: "sess_1",
	})
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v", err)
	}

	entry := store.logs[0]
	if entry.TraceID != "req_fixed" {
		t.Errorf("log TraceID = %q, want req_fixed", entry.TraceID)
	}
	if entry.UserID != "user_abc" || entry.SessionID != "sess_1" {
		t.Errorf("log identity = {%q %q}", entry.UserID, entry.SessionID)
	}
}

// ========== ScoreAnswer ==========

func TestScoreAnswer(t *testing.T) {
	svc := newTestService(&mockChatModel{}, nil)

	result, err := svc.ScoreAnswer("인슐린 저항성", "인슐린 저항성", "short_answer", nil)
	if err != nil {
		t.Fatalf("ScoreAnswer() error = %v", err)
	}
	if !result.IsCorrect || result.Score != 1.0 {
		t.Errorf("result = {IsCorrect:%v Score:%v}", result.IsCorrect, result.Score)
	}
}

func TestScoreAnswerPartialCredit(t *testing.T) {
	svc := newTestService(&mockChatModel{}, nil)

	result, err := svc.ScoreAnswer(
		"식이요법이 가장 중요합니다",
		"식이요법과 운동이 중요합니다",
		"short_answer",
		[]string{"식이요법", "운동"},
	)
	if err != nil {
		t.Fatalf("ScoreAnswer() error = %v", err)
	}
	if len(result.MatchedKeywords) != 1 || result.MatchedKeywords[0] != "식이요법" {
		t.Errorf("MatchedKeywords = %v, want [식이요법]", result.MatchedKeywords)
	}
}

func TestScoreAnswerEmptyReference(t *testing.T) {
	svc := newTestService(&mockChatModel{}, nil)

	_, err := svc.ScoreAnswer("답", "  ", "short_answer", nil)
	if !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestScoreAnswerInvalidQuestionType(t *testing.T) {
	svc := newTestService(&mockChatModel{}, nil)

	_, err := svc.ScoreAnswer("답", "정답", "true_false", nil)
	if !errors.Is(err, scoring.ErrInvalidQuestionType) {
		t.Errorf("error = %v, want ErrInvalidQuestionType", err)
	}
}
