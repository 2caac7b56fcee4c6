package department

import "strings"

// emergencyKeywords 急诊信号关键词
var emergencyKeywords = []string{
	// 胸部
	"흉통", "가슴통증", "심장통증", "심근경색",
	// 呼吸
	"호흡곤란", "숨쉬기힘듦", "숨이막힘",
	// 神经
	"의식저하", "의식불명", "정신혼미", "실신", "발작",
	// 出血
	"심한출혈", "대량출혈", "피를많이흘림",
	// 外伤
	"교통사고", "추락", "골절",
	// 其他
	"쇼크", "중독", "질식",
}

// departmentKeywords 各科室关键词表
var departmentKeywords = map[Code][]string{
	EM: append([]string{
		"응급", "급성", "심한통증", "즉시", "119",
	}, emergencyKeywords...),
	OBGYN: {
		"임신", "출산", "산후", "월경", "생리", "질출혈",
		"태아", "임산부", "수유", "산부인과",
	},
	PED: {
		"영아", "유아", "신생아", "소아", "아기", "어린이",
		"청소년", "예방접종", "성장", "발달",
	},
	IM: {
		"당뇨", "고혈압", "고지혈증", "만성질환",
		"소화기", "간", "위", "대장", "췌장",
		"약물", "복용", "처방",
	},
}

// keywordPriority 同分时的科室优先级
var keywordPriority = []Code{EM, OBGYN, PED, IM}

// HasEmergencySignal 检测问题中是否包含急诊信号
func HasEmergencySignal(text string) bool {
	normalized := normalizeForMatch(text)
	for _, kw := range emergencyKeywords {
		if strings.Contains(normalized, normalizeForMatch(kw)) {
			return true
		}
	}
	return false
}

// SuggestDepartment 基于关键词命中数建议科室，无命中返回 false
func SuggestDepartment(text string) (Code, bool) {
	normalized := normalizeForMatch(text)

	var best Code
	bestScore := 0
	for _, dept := range keywordPriority {
		score := 0
		for _, kw := range departmentKeywords[dept] {
			if strings.Contains(normalized, normalizeForMatch(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = dept
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// normalizeForMatch 小写并去除空格后做包含匹配
func normalizeForMatch(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}
