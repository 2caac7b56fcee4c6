// Package routing 将用户问题分诊到具体科室
package routing

import (
	"context"
	"fmt"
	"log"

	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/cloudwego/eino/schema"
)

const routerSystemPrompt = `당신은 의료 질문을 진료과로 분류하는 분류기입니다.
질문을 읽고 아래 진료과 코드 중 정확히 하나만 출력하세요.

- EM: 응급의학과 (응급 상황, 급성 증상)
- IM: 내과 (만성질환, 소화기, 내분비)
- PED: 소아청소년과 (영유아, 소아, 청소년)
- OBGYN: 산부인과 (임신, 출산, 여성 질환)
- COMMON: 위에 해당하지 않는 일반 건강 질문

코드 외의 다른 텍스트는 출력하지 마세요.`

// Service 科室分诊服务
type Service struct {
	llm *llm.Client
}

// NewService 创建分诊服务
func NewService(llmClient *llm.Client) *Service {
	return &Service{llm: llmClient}
}

// Route 分诊：急诊信号 → 关键词 → LLM → 关键词或 COMMON。
// 任何失败都降级，不返回错误。
func (s *Service) Route(ctx context.Context, question string, useLLM bool) department.Code {
	// 急诊信号最优先
	if department.HasEmergencySignal(question) {
		log.Printf("emergency detected, routing to EM: %s", preview(question))
		return department.EM
	}

	// 关键词建议
	keywordDept, hasKeyword := department.SuggestDepartment(question)
	if hasKeyword && !useLLM {
		return keywordDept
	}

	// LLM 分类
	if useLLM {
		llmDept, err := s.classifyWithLLM(ctx, question)
		if err == nil {
			return llmDept
		}
		log.Printf("Warning: llm routing failed: %v", err)
	}

	if hasKeyword {
		return keywordDept
	}
	return department.COMMON
}

// ValidateDepartment 校验外部传入的科室代码
func (s *Service) ValidateDepartment(code string) (department.Code, bool) {
	return department.Parse(code)
}

// classifyWithLLM 调用 LLM 做单 token 分类
func (s *Service) classifyWithLLM(ctx context.Context, question string) (department.Code, error) {
	if s.llm == nil {
		return "", fmt.Errorf("llm client not configured")
	}

	messages := []*schema.Message{
		schema.SystemMessage(routerSystemPrompt),
		schema.UserMessage(fmt.Sprintf("질문: %s\n\n진료과 코드:", question)),
	}

	token, err := s.llm.ClassifyToken(ctx, messages)
	if err != nil {
		return "", err
	}

	dept, ok := department.Parse(token)
	if !ok {
		return "", fmt.Errorf("invalid department code from llm: %q", token)
	}
	return dept, nil
}

// preview 日志用问题摘要
func preview(question string) string {
	runes := []rune(question)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return question
}
