package search

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESSearcher 检索接口，便于测试替换
type ESSearcher interface {
	DoSearch(ctx context.Context, index string, query []byte) (*ESResponse, error)
	IndexExists(ctx context.Context, index string) (bool, error)
}

// ESResponse 检索响应
type ESResponse struct {
	IsError bool
	Status  string
	Body    io.ReadCloser
}

// esSearcher 基于官方客户端的实现
type esSearcher struct {
	client *elasticsearch.Client
}

// NewESSearcher 创建 ES 检索器
func NewESSearcher(client *elasticsearch.Client) ESSearcher {
	return &esSearcher{client: client}
}

// DoSearch 执行检索请求
func (s *esSearcher) DoSearch(ctx context.Context, index string, query []byte) (*ESResponse, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch client not configured")
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(query)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	return &ESResponse{
		IsError: res.IsError(),
		Status:  res.Status(),
		Body:    res.Body,
	}, nil
}

// IndexExists 检查索引是否存在
func (s *esSearcher) IndexExists(ctx context.Context, index string) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("elasticsearch client not configured")
	}

	res, err := s.client.Indices.Exists(
		[]string{index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("index exists request failed: %w", err)
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}
