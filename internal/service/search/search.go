// Package search 提供按科室分库的向量检索
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ashwinyue/medi-rag/internal/config"
	"github.com/ashwinyue/medi-rag/internal/service/department"
)

// Passage 检索结果
type Passage struct {
	DocID      string                 `json:"doc_id"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Source     string                 `json:"source"`
	Score      float64                `json:"score"`
	Department department.Code        `json:"department"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Service 向量检索服务
type Service struct {
	es             ESSearcher
	indexPrefix    string
	topK           int
	scoreThreshold float64
}

// NewService 创建检索服务
func NewService(es ESSearcher, cfg *config.Config) *Service {
	return &Service{
		es:             es,
		indexPrefix:    cfg.Elastic.IndexPrefix,
		topK:           cfg.Search.TopK,
		scoreThreshold: cfg.Search.ScoreThreshold,
	}
}

// IndexName 科室对应的索引名
func (s *Service) IndexName(dept department.Code) string {
	return fmt.Sprintf("%s_%s", s.indexPrefix, dept.IndexSuffix())
}

// Search 向量相似度检索，失败时返回空结果
func (s *Service) Search(ctx context.Context, vector []float64, dept department.Code, topK int, filters map[string]interface{}) []*Passage {
	if topK <= 0 {
		topK = s.topK
	}

	passages, err := s.doSearch(ctx, vector, dept, topK, filters)
	if err != nil {
		log.Printf("Warning: search failed for %s: %v", s.IndexName(dept), err)
		return []*Passage{}
	}
	return passages
}

// SearchWithFallback 先查指定科室，不足时用 COMMON 补齐剩余名额
func (s *Service) SearchWithFallback(ctx context.Context, vector []float64, dept department.Code, topK int) []*Passage {
	if topK <= 0 {
		topK = s.topK
	}

	results := s.Search(ctx, vector, dept, topK, nil)

	if len(results) < topK && dept != department.COMMON {
		remaining := topK - len(results)
		common := s.Search(ctx, vector, department.COMMON, remaining, nil)
		results = append(results, common...)
	}

	return results
}

// CheckIndexExists 科室索引是否就绪
func (s *Service) CheckIndexExists(ctx context.Context, dept department.Code) bool {
	if s.es == nil {
		return false
	}
	exists, err := s.es.IndexExists(ctx, s.IndexName(dept))
	if err != nil {
		log.Printf("Warning: index check failed for %s: %v", s.IndexName(dept), err)
		return false
	}
	return exists
}

// doSearch 构建并执行 script_score 查询
func (s *Service) doSearch(ctx context.Context, vector []float64, dept department.Code, topK int, filters map[string]interface{}) ([]*Passage, error) {
	if s.es == nil {
		return nil, fmt.Errorf("searcher not configured")
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	query, err := buildVectorQuery(vector, topK, s.scoreThreshold, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	res, err := s.es.DoSearch(ctx, s.IndexName(dept), query)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError {
		return nil, fmt.Errorf("search returned error status: %s", res.Status)
	}

	return parseSearchResponse(res, dept)
}

// buildVectorQuery 余弦相似度 script_score 查询，分数归一到 [0,1]
func buildVectorQuery(vector []float64, topK int, scoreThreshold float64, filters map[string]interface{}) ([]byte, error) {
	var baseQuery map[string]interface{}
	if len(filters) > 0 {
		must := make([]map[string]interface{}, 0, len(filters))
		for key, value := range filters {
			must = append(must, map[string]interface{}{
				"term": map[string]interface{}{key: value},
			})
		}
		baseQuery = map[string]interface{}{
			"bool": map[string]interface{}{"filter": must},
		}
	} else {
		baseQuery = map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	query := map[string]interface{}{
		"size":      topK,
		"min_score": scoreThreshold,
		"query": map[string]interface{}{
			"script_score": map[string]interface{}{
				"query": baseQuery,
				"script": map[string]interface{}{
					"source": "(cosineSimilarity(params.query_vector, 'content_vector') + 1.0) / 2.0",
					"params": map[string]interface{}{
						"query_vector": vector,
					},
				},
			},
		},
		"_source": []string{"title", "content", "source", "department", "metadata"},
	}

	return json.Marshal(query)
}

// esHits 检索响应结构
type esHits struct {
	Hits struct {
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source struct {
				Title    string                 `json:"title"`
				Content  string                 `json:"content"`
				Source   string                 `json:"source"`
				Metadata map[string]interface{} `json:"metadata"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// parseSearchResponse 解析检索响应
func parseSearchResponse(res *ESResponse, dept department.Code) ([]*Passage, error) {
	var parsed esHits
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	passages := make([]*Passage, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		passages = append(passages, &Passage{
			DocID:      hit.ID,
			Title:      hit.Source.Title,
			Content:    hit.Source.Content,
			Source:     hit.Source.Source,
			Score:      hit.Score,
			Department: dept,
			Metadata:   hit.Source.Metadata,
		})
	}
	return passages, nil
}
