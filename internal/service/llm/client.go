// Package llm 封装 eino ChatModel 与 Embedder
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var (
	// ErrCompletion 生成答案失败
	ErrCompletion = errors.New("llm: completion failed")
	// ErrEmbedding 向量化失败
	ErrEmbedding = errors.New("llm: embedding failed")
)

// CompletionResult 生成结果
type CompletionResult struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMS  int64
}

// Client LLM 客户端
type Client struct {
	chatModel   model.BaseChatModel
	embedder    embedding.Embedder
	modelName   string
	temperature float32
	maxTokens   int
}

// NewClient 创建 LLM 客户端
func NewClient(chatModel model.BaseChatModel, embedder embedding.Embedder, modelName string, temperature float32, maxTokens int) *Client {
	return &Client{
		chatModel:   chatModel,
		embedder:    embedder,
		modelName:   modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// ModelName 返回模型名
func (c *Client) ModelName() string {
	return c.modelName
}

// Complete 生成答案，opts 可覆盖默认参数
func (c *Client) Complete(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*CompletionResult, error) {
	if c.chatModel == nil {
		return nil, fmt.Errorf("%w: chat model not configured", ErrCompletion)
	}

	start := time.Now()

	callOpts := []model.Option{
		model.WithTemperature(c.temperature),
		model.WithMaxTokens(c.maxTokens),
	}
	callOpts = append(callOpts, opts...)

	resp, err := c.chatModel.Generate(ctx, messages, callOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	result := &CompletionResult{
		Content:   resp.Content,
		Model:     c.modelName,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		result.TokensUsed = resp.ResponseMeta.Usage.TotalTokens
	}
	return result, nil
}

// Embed 生成文本向量
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c.embedder == nil {
		return nil, fmt.Errorf("%w: embedder not configured", ErrEmbedding)
	}

	vectors, err := c.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrEmbedding)
	}
	return vectors[0], nil
}

// ClassifyToken 单 token 分类：温度 0、限制 50 token，取首词并大写
func (c *Client) ClassifyToken(ctx context.Context, messages []*schema.Message) (string, error) {
	result, err := c.Complete(ctx, messages,
		model.WithTemperature(0),
		model.WithMaxTokens(50),
	)
	if err != nil {
		return "", err
	}

	token := strings.ToUpper(strings.TrimSpace(result.Content))
	if fields := strings.Fields(token); len(fields) > 0 {
		token = fields[0]
	}
	return token, nil
}
