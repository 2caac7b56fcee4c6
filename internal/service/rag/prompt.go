package rag

import (
	"fmt"
	"strings"

	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/search"
	"github.com/cloudwego/eino/schema"
)

// ragSystemPrompts 各科室的系统提示词
var ragSystemPrompts = map[department.Code]string{
	department.EM: `당신은 응급의학과 전문 의료 상담 보조입니다.
제공된 의료 문서를 근거로 답변하되, 응급 상황이 의심되면 즉시 119 연락 또는 응급실 방문을 최우선으로 안내하세요.
확실하지 않은 내용은 추측하지 마세요.`,
	department.IM: `당신은 내과 전문 의료 상담 보조입니다.
만성질환, 소화기, 내분비 관련 질문에 대해 제공된 의료 문서를 근거로 답변하세요.
약물 변경이나 복용 중단은 반드시 의사와 상담하도록 안내하세요.`,
	department.PED: `당신은 소아청소년과 전문 의료 상담 보조입니다.
영유아와 소아는 성인과 다른 기준이 적용됩니다. 제공된 의료 문서를 근거로 답변하고,
연령별 주의사항을 함께 안내하세요.`,
	department.OBGYN: `당신은 산부인과 전문 의료 상담 보조입니다.
임신, 출산, 여성 질환 관련 질문에 대해 제공된 의료 문서를 근거로 답변하세요.
임신 중 약물과 시술은 반드시 전문의 상담을 권고하세요.`,
	department.COMMON: `당신은 의료 상담 보조입니다.
제공된 의료 문서를 근거로 정확하고 신중하게 답변하세요.
진단이나 처방은 할 수 없으며, 필요 시 의료기관 방문을 권고하세요.`,
}

// buildRAGPrompt 构建 RAG 回答提示词
func buildRAGPrompt(question string, dept department.Code, passages []*search.Passage) []*schema.Message {
	systemPrompt, ok := ragSystemPrompts[dept]
	if !ok {
		systemPrompt = ragSystemPrompts[department.COMMON]
	}

	userPrompt := fmt.Sprintf(`질문: %s

관련 의료 문서:
%s

위 문서를 근거로 질문에 답변해주세요.
반드시 사용한 문서의 출처를 명시하세요.
근거가 불충분하면 추가 정보가 필요함을 명시하거나 의료진 상담을 권고하세요.`, question, formatRetrievedDocs(passages))

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}
}

// formatRetrievedDocs 检索文档转为提示词上下文
func formatRetrievedDocs(passages []*search.Passage) string {
	if len(passages) == 0 {
		return "관련 문서를 찾을 수 없습니다."
	}

	formatted := make([]string, 0, len(passages))
	for i, p := range passages {
		source := p.Source
		if source == "" {
			source = "알 수 없음"
		}
		title := p.Title
		if title == "" {
			title = "제목 없음"
		}
		formatted = append(formatted, fmt.Sprintf("[문서 %d]\n출처: %s\n제목: %s\n내용: %s\n관련도 점수: %.2f",
			i+1, source, title, p.Content, p.Score))
	}

	return strings.Join(formatted, "\n\n")
}

// formatPatientInfo 患者信息转为提示词片段
func formatPatientInfo(info map[string]interface{}) string {
	parts := make([]string, 0, 3)

	if age, ok := info["age"]; ok {
		parts = append(parts, fmt.Sprintf("나이 %v세", age))
	}

	if gender, ok := info["gender"].(string); ok {
		switch strings.ToLower(gender) {
		case "male", "m":
			parts = append(parts, "남성")
		case "female", "f":
			parts = append(parts, "여성")
		default:
			parts = append(parts, gender)
		}
	}

	if conditions, ok := info["conditions"].([]interface{}); ok && len(conditions) > 0 {
		names := make([]string, 0, len(conditions))
		for _, c := range conditions {
			names = append(names, fmt.Sprintf("%v", c))
		}
		parts = append(parts, "기저질환: "+strings.Join(names, ", "))
	} else if conditions, ok := info["conditions"].([]string); ok && len(conditions) > 0 {
		parts = append(parts, "기저질환: "+strings.Join(conditions, ", "))
	}

	return strings.Join(parts, ", ")
}
