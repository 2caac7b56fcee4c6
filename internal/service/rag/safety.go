package rag

import (
	"strings"

	"github.com/ashwinyue/medi-rag/internal/service/department"
)

const (
	emergencyWarning   = "⚠️ 응급 상황이 의심됩니다. 즉시 119에 연락하거나 가까운 응급실을 방문하세요."
	noDocumentsWarning = "관련 문서를 찾을 수 없습니다. 일반적인 답변만 제공됩니다."
	consultWarning     = "본 답변은 참고용이며, 정확한 진단과 처방은 의료기관을 방문하여 받으시기 바랍니다."
	obgynWarning       = "임신 관련 사항은 반드시 산부인과 전문의와 상담하시기 바랍니다."
	pedWarning         = "영유아 및 소아의 경우 증상이 급격히 악화될 수 있으니 주의 깊게 관찰하세요."
)

// diagnosisKeywords 答案中出现这些词时附加就医提示
var diagnosisKeywords = []string{"진단", "처방", "약물", "수술"}

// checkSafety 安全检查。返回是否急诊信号与附加警告
func checkSafety(question, answer string, dept department.Code) (bool, []string) {
	warnings := []string{}

	for _, kw := range diagnosisKeywords {
		if strings.Contains(answer, kw) {
			warnings = append(warnings, consultWarning)
			break
		}
	}

	if dept == department.OBGYN {
		if strings.Contains(question, "임신") || strings.Contains(question, "태아") {
			warnings = append(warnings, obgynWarning)
		}
	}

	if dept == department.PED {
		warnings = append(warnings, pedWarning)
	}

	return department.HasEmergencySignal(question), warnings
}
