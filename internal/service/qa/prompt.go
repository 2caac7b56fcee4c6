package qa

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

const qaSystemPrompt = `당신은 의학 시험 문제를 푸는 전문가입니다.
문제를 읽고 정답만 간결하게 답하세요.
객관식이면 선택지 번호를, 주관식이면 핵심 답안을 출력하세요.`

// buildQAPrompt 构建答题提示词
func buildQAPrompt(question string) []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(qaSystemPrompt),
		schema.UserMessage(fmt.Sprintf("문제: %s\n\n답:", question)),
	}
}
