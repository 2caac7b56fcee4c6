// Package service 组装业务服务与 Eino 组件
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/repository"
	"github.com/ashwinyue/medi-rag/internal/service/ingest"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/ashwinyue/medi-rag/internal/service/qa"
	"github.com/ashwinyue/medi-rag/internal/service/rag"
	"github.com/ashwinyue/medi-rag/internal/service/routing"
	"github.com/ashwinyue/medi-rag/internal/service/scoring"
	"github.com/ashwinyue/medi-rag/internal/service/search"
	"github.com/cloudwego/eino-ext/components/embedding/dashscope"
	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/elastic/go-elasticsearch/v8"
)

// Services 服务集合
type Services struct {
	// 业务服务
	QA     *qa.Service
	RAG    *rag.Service
	Router *routing.Service
	Search *search.Service
	Scorer *scoring.Scorer
	Ingest *ingest.Service
	LLM    *llm.Client

	// 配置
	Config *config.Config

	// Eino 组件（直接使用 eino 类型，无封装）
	ChatModel model.BaseChatModel
	Embedder  embedding.Embedder
	ESClient  *elasticsearch.Client
}

// NewServices 创建所有服务
// 参考 eino-examples，使用简单的 newXxx() 函数直接初始化 eino 组件
func NewServices(repo *repository.Repositories, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to create chat model: %v", err)
	}

	embedder := newEmbedder(ctx, cfg)

	esClient := newESClient(cfg)

	modelName, temperature, maxTokens := generationParams(cfg)
	llmClient := llm.NewClient(chatModel, embedder, modelName, temperature, maxTokens)

	scorer := scoring.NewScorer(cfg)
	router := routing.NewService(llmClient)
	searchSvc := search.NewService(search.NewESSearcher(esClient), cfg)
	ingestSvc := ingest.NewService(cfg, esClient, embedder)

	var auditSink rag.AuditSink
	var qaStore qa.QAStore
	if repo != nil {
		auditSink = repo.Audit
		qaStore = repo.QA
	}

	return &Services{
		QA:     qa.NewService(cfg, llmClient, scorer, qaStore),
		RAG:    rag.NewService(cfg, llmClient, searchSvc, router, auditSink),
		Router: router,
		Search: searchSvc,
		Scorer: scorer,
		Ingest: ingestSvc,
		LLM:    llmClient,

		Config: cfg,

		ChatModel: chatModel,
		Embedder:  embedder,
		ESClient:  esClient,
	}, nil
}

// newChatModel 创建 ChatModel
func newChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai", "":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
}

// generationParams 答案生成的默认参数
func generationParams(cfg *config.Config) (modelName string, temperature float32, maxTokens int) {
	modelName = cfg.AI.OpenAI.Model
	if cfg.AI.Provider == "deepseek" && cfg.AI.DeepSeek.Model != "" {
		modelName = cfg.AI.DeepSeek.Model
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	temperature = float32(cfg.AI.OpenAI.Temperature)
	maxTokens = cfg.AI.OpenAI.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	return modelName, temperature, maxTokens
}

// newEmbedder 创建 Embedding 器
func newEmbedder(ctx context.Context, cfg *config.Config) embedding.Embedder {
	embCfg := cfg.AI.Embedding

	if embCfg.APIKey == "" {
		log.Printf("Warning: embedding api_key is empty")
		return nil
	}

	switch embCfg.Provider {
	case "openai", "":
		embConfig := &openaiembed.EmbeddingConfig{
			APIKey:  embCfg.APIKey,
			BaseURL: embCfg.BaseURL,
			Model:   embCfg.Model,
		}
		if embConfig.Model == "" {
			embConfig.Model = "text-embedding-3-small"
		}
		if embCfg.Timeout > 0 {
			embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
		}
		if embCfg.Dimensions > 0 {
			embConfig.Dimensions = &embCfg.Dimensions
		}

		embedder, err := openaiembed.NewEmbedder(ctx, embConfig)
		if err != nil {
			log.Printf("Warning: failed to create embedder: %v", err)
			return nil
		}
		return embedder

	case "alibaba", "qwen", "dashscope":
		embConfig := &dashscope.EmbeddingConfig{
			APIKey: embCfg.APIKey,
			Model:  embCfg.Model,
		}
		if embConfig.Model == "" {
			embConfig.Model = "text-embedding-v3"
		}
		if embCfg.Timeout > 0 {
			embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
		}
		if embCfg.Dimensions > 0 {
			embConfig.Dimensions = &embCfg.Dimensions
		}

		embedder, err := dashscope.NewEmbedder(ctx, embConfig)
		if err != nil {
			log.Printf("Warning: failed to create embedder: %v", err)
			return nil
		}
		return embedder

	default:
		log.Printf("Warning: unsupported embedding provider: %s", embCfg.Provider)
		return nil
	}
}

// newESClient 创建 ES8 客户端
func newESClient(cfg *config.Config) *elasticsearch.Client {
	esCfg := cfg.Elastic

	if esCfg.Host == "" {
		log.Printf("Warning: elasticsearch host not configured")
		return nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esCfg.Host},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
	})
	if err != nil {
		log.Printf("Warning: failed to create es client: %v", err)
		return nil
	}

	return client
}
