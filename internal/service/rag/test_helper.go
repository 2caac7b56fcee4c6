package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/model"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/routing"
	"github.com/ashwinyue/medi-rag/internal/service/search"
	"github.com/cloudwego/eino/components/embedding"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== 测试用 Mock ==========

type mockChatModel struct {
	response string
	err      error
	calls    int
	messages []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.calls++
	m.messages = input
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

type mockEmbedder struct {
	vector []float64
	err    error
}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([][]float64, len(texts))
	for i := range texts {
		result[i] = m.vector
	}
	return result, nil
}

type mockESSearcher struct {
	hitsByIndex map[string]int
	queried     []string
}

func (m *mockESSearcher) DoSearch(ctx context.Context, index string, query []byte) (*search.ESResponse, error) {
	m.queried = append(m.queried, index)

	var q struct {
		Size int `json:"size"`
	}
	_ = json.Unmarshal(query, &q)

	count := m.hitsByIndex[index]
	if q.Size > 0 && count > q.Size {
		count = q.Size
	}

	hits := make([]string, 0, count)
	for i := 0; i < count; i++ {
		hits = append(hits, fmt.Sprintf(`{
			"_id": "%s-doc-%d",
			"_score": %.2f,
			"_source": {
				"title": "가이드라인 %d",
				"content": "의료 문서 내용 %d",
				"source": "대한의학회"
			}
		}`, index, i, 0.9-float64(i)*0.05, i, i))
	}
	body := fmt.Sprintf(`{"hits":{"hits":[%s]}}`, strings.Join(hits, ","))

	return &search.ESResponse{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (m *mockESSearcher) IndexExists(ctx context.Context, index string) (bool, error) {
	_, ok := m.hitsByIndex[index]
	return ok, nil
}

type mockAuditSink struct {
	logs []*model.RAGAttemptLog
	err  error
}

func (m *mockAuditSink) CreateRAGLog(ctx context.Context, log *model.RAGAttemptLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

// ========== 测试环境 ==========

type testEnv struct {
	svc   *Service
	chat  *mockChatModel
	es    *mockESSearcher
	audit *mockAuditSink
}

func newTestEnv(chat *mockChatModel, embedder *mockEmbedder, es *mockESSearcher, audit *mockAuditSink) *testEnv {
	cfg := &config.Config{
		Elastic:  config.ElasticConfig{IndexPrefix: "medical_docs"},
		Search:   config.SearchConfig{TopK: 5, ScoreThreshold: 0.7},
		Security: config.SecurityConfig{MaxQuestionLength: 2000},
		Prompt:   config.PromptConfig{Version: "1.0.0"},
	}

	llmClient := llm.NewClient(chat, embedder, "gpt-4o-mini", 0.3, 2000)
	searchSvc := search.NewService(es, cfg)
	router := routing.NewService(llmClient)

	return &testEnv{
		svc:   NewService(cfg, llmClient, searchSvc, router, audit),
		chat:  chat,
		es:    es,
		audit: audit,
	}
}
