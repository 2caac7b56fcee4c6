package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== Mock 实现 ==========

type mockChatModel struct {
	response string
	usage    *schema.TokenUsage
	err      error
	calls    int
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	msg := &schema.Message{Role: schema.Assistant, Content: m.response}
	if m.usage != nil {
		msg.ResponseMeta = &schema.ResponseMeta{Usage: m.usage}
	}
	return msg, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
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

// ========== 测试 ==========

func TestComplete(t *testing.T) {
	cm := &mockChatModel{
		response: "답변입니다",
		usage:    &schema.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	client := NewClient(cm, nil, "gpt-4o-mini", 0.3, 2000)

	result, err := client.Complete(context.Background(), []*schema.Message{
		schema.UserMessage("질문"),
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if result.Content != "답변입니다" {
		t.Errorf("content = %q, want %q", result.Content, "답변입니다")
	}
	if result.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want %q", result.Model, "gpt-4o-mini")
	}
	if result.TokensUsed != 15 {
		t.Errorf("tokens = %d, want 15", result.TokensUsed)
	}
}

func TestCompleteError(t *testing.T) {
	cm := &mockChatModel{err: errors.New("api unavailable")}
	client := NewClient(cm, nil, "gpt-4o-mini", 0.3, 2000)

	_, err := client.Complete(context.Background(), []*schema.Message{
		schema.UserMessage("질문"),
	})
	if !errors.Is(err, ErrCompletion) {
		t.Errorf("error should wrap ErrCompletion, got %v", err)
	}
}

func TestCompleteNilModel(t *testing.T) {
	client := NewClient(nil, nil, "gpt-4o-mini", 0.3, 2000)

	_, err := client.Complete(context.Background(), nil)
	if !errors.Is(err, ErrCompletion) {
		t.Errorf("error should wrap ErrCompletion, got %v", err)
	}
}

func TestEmbed(t *testing.T) {
	emb := &mockEmbedder{vector: []float64{0.1, 0.2, 0.3}}
	client := NewClient(nil, emb, "gpt-4o-mini", 0.3, 2000)

	vector, err := client.Embed(context.Background(), "질문")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vector) != 3 {
		t.Errorf("vector len = %d, want 3", len(vector))
	}
}

func TestEmbedError(t *testing.T) {
	emb := &mockEmbedder{err: errors.New("quota exceeded")}
	client := NewClient(nil, emb, "gpt-4o-mini", 0.3, 2000)

	_, err := client.Embed(context.Background(), "질문")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("error should wrap ErrEmbedding, got %v", err)
	}
}

func TestEmbedNilEmbedder(t *testing.T) {
	client := NewClient(nil, nil, "gpt-4o-mini", 0.3, 2000)

	_, err := client.Embed(context.Background(), "질문")
	if !errors.Is(err, ErrEmbedding) {
		t.Errorf("error should wrap ErrEmbedding, got %v", err)
	}
}

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"干净输出", "EM", "EM"},
		{"小写输出", "obgyn", "OBGYN"},
		{"带空白", "  ped\n", "PED"},
		{"多词取首词", "IM 내과가 적합합니다", "IM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := &mockChatModel{response: tt.response}
			client := NewClient(cm, nil, "gpt-4o-mini", 0.3, 2000)

			got, err := client.ClassifyToken(context.Background(), []*schema.Message{
				schema.UserMessage("질문"),
			})
			if err != nil {
				t.Fatalf("ClassifyToken() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClassifyToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
