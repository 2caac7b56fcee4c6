// Package ingest 实现医疗文档分块、向量化与 ES 索引
// 直接使用 eino-ext 官方组件，避免冗余封装
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/types"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino-ext/components/indexer/es8"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const (
	chunkSize        = 512
	chunkOverlap     = 50
	indexerBatchSize = 10
)

// Document 待索引的医疗文档
type Document struct {
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Source     string                 `json:"source"`
	Department department.Code        `json:"department"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Result 单科室索引结果
type Result struct {
	Department department.Code `json:"department"`
	Index      string          `json:"index"`
	Documents  int             `json:"documents"`
	Chunks     int             `json:"chunks"`
}

// Service 文档索引服务
type Service struct {
	cfg      *config.Config
	client   *elasticsearch.Client
	embedder embedding.Embedder
}

// NewService 创建索引服务
func NewService(cfg *config.Config, client *elasticsearch.Client, embedder embedding.Embedder) *Service {
	return &Service{
		cfg:      cfg,
		client:   client,
		embedder: embedder,
	}
}

// IndexDocuments 按科室分组索引文档
func (s *Service) IndexDocuments(ctx context.Context, docs []*Document) ([]*Result, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: documents are empty", types.ErrInvalidArgument)
	}
	if s.client == nil || s.embedder == nil {
		return nil, fmt.Errorf("ingest service not configured")
	}

	grouped, err := groupByDepartment(docs)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]*Result, 0, len(grouped))
	// 按固定科室顺序索引，结果顺序可预期
	for _, dept := range department.All() {
		deptDocs, ok := grouped[dept]
		if !ok {
			continue
		}

		result, err := s.indexDepartment(ctx, dept, deptDocs)
		if err != nil {
			return nil, fmt.Errorf("index department %s: %w", dept, err)
		}
		results = append(results, result)
	}

	log.Printf("ingest completed: departments=%d documents=%d latency_ms=%d",
		len(results), len(docs), time.Since(start).Milliseconds())

	return results, nil
}

// SeedSamples 索引内置示例文档
func (s *Service) SeedSamples(ctx context.Context) ([]*Result, error) {
	return s.IndexDocuments(ctx, SampleDocuments())
}

// indexDepartment 索引单科室文档：确保索引存在 → 分块 → 向量化并写入
func (s *Service) indexDepartment(ctx context.Context, dept department.Code, docs []*Document) (*Result, error) {
	indexName := fmt.Sprintf("%s_%s", s.cfg.Elastic.IndexPrefix, dept.IndexSuffix())

	if err := s.ensureIndex(ctx, indexName); err != nil {
		return nil, err
	}

	chunks, err := splitDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	indexer, err := es8.NewIndexer(ctx, &es8.IndexerConfig{
		Client:    s.client,
		Index:     indexName,
		BatchSize: indexerBatchSize,
		Embedding: s.embedder,
		DocumentToFields: func(ctx context.Context, doc *schema.Document) (map[string]es8.FieldValue, error) {
			return documentToESFields(doc), nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create indexer: %w", err)
	}

	ids, err := indexer.Store(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("store documents: %w", err)
	}
	log.Printf("indexed chunks: index=%s chunks=%d", indexName, len(ids))

	return &Result{
		Department: dept,
		Index:      indexName,
		Documents:  len(docs),
		Chunks:     len(chunks),
	}, nil
}

// ensureIndex 索引不存在时创建，向量字段用余弦相似度
func (s *Service) ensureIndex(ctx context.Context, indexName string) error {
	res, err := s.client.Indices.Exists([]string{indexName}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	mappingData, err := json.Marshal(buildIndexMapping(s.cfg.AI.Embedding.Dimensions))
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	req := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  bytes.NewReader(mappingData),
	}
	res, err = req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", indexName, res.String())
	}

	log.Printf("index created: index=%s", indexName)
	return nil
}

// groupByDepartment 按科室分组，科室缺失的文档拒绝
func groupByDepartment(docs []*Document) (map[department.Code][]*Document, error) {
	grouped := make(map[department.Code][]*Document)
	for i, doc := range docs {
		if doc.Content == "" {
			return nil, fmt.Errorf("%w: document %d has empty content", types.ErrInvalidArgument, i)
		}
		dept, ok := department.Parse(doc.Department.String())
		if !ok {
			return nil, fmt.Errorf("%w: document %d has invalid department %q", types.ErrInvalidArgument, i, doc.Department)
		}
		grouped[dept] = append(grouped[dept], doc)
	}
	return grouped, nil
}

// splitDocuments 分块并携带来源元数据
func splitDocuments(ctx context.Context, docs []*Document) ([]*schema.Document, error) {
	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   chunkSize,
		OverlapSize: chunkOverlap,
		Separators:  []string{"\n\n", "\n", ". ", "。", "? ", "？", "! ", "！", ", ", "，", " ", ""},
		KeepType:    recursive.KeepTypeNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create splitter: %w", err)
	}

	einoDocs := make([]*schema.Document, 0, len(docs))
	for _, doc := range docs {
		metadata := map[string]any{
			"title":      doc.Title,
			"source":     doc.Source,
			"department": doc.Department.String(),
		}
		for k, v := range doc.Metadata {
			metadata[k] = v
		}
		einoDocs = append(einoDocs, &schema.Document{
			ID:       uuid.New().String(),
			Content:  doc.Content,
			MetaData: metadata,
		})
	}

	chunks, err := splitter.Transform(ctx, einoDocs)
	if err != nil {
		return nil, fmt.Errorf("split documents: %w", err)
	}

	for i, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		if chunk.MetaData == nil {
			chunk.MetaData = make(map[string]any)
		}
		chunk.MetaData["chunk_index"] = i
	}

	return chunks, nil
}

// documentToESFields Eino Document 转 ES 字段，content 向量化到 content_vector
func documentToESFields(doc *schema.Document) map[string]es8.FieldValue {
	fields := make(map[string]es8.FieldValue)

	fields["content"] = es8.FieldValue{
		Value:    doc.Content,
		EmbedKey: "content_vector",
	}

	for k, v := range doc.MetaData {
		fields[k] = es8.FieldValue{Value: v}
	}

	return fields
}

// buildIndexMapping 检索索引映射
func buildIndexMapping(dimensions int) map[string]interface{} {
	if dimensions == 0 {
		dimensions = 1536
	}

	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"content": map[string]interface{}{
					"type": "text",
				},
				"content_vector": map[string]interface{}{
					"type":       "dense_vector",
					"dims":       dimensions,
					"index":      true,
					"similarity": "cosine",
				},
				"title": map[string]interface{}{
					"type": "text",
				},
				"source": map[string]interface{}{
					"type": "keyword",
				},
				"department": map[string]interface{}{
					"type": "keyword",
				},
				"chunk_index": map[string]interface{}{
					"type": "integer",
				},
			},
		},
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
	}
}
