// Package scoring 实现答案判分
package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ashwinyue/medi-rag/internal/config"
)

// QuestionType 题目类型
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
	Essay          QuestionType = "essay"
)

// ErrInvalidQuestionType 未知题目类型
var ErrInvalidQuestionType = errors.New("scoring: invalid question type")

// Result 判分结果
type Result struct {
	IsCorrect       bool     `json:"is_correct"`
	Score           float64  `json:"score"`
	Explanation     string   `json:"explanation"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Scorer 判分器
type Scorer struct {
	exactMatchThreshold float64
	similarityThreshold float64
}

// NewScorer 创建判分器
func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{
		exactMatchThreshold: cfg.Scoring.ExactMatchThreshold,
		similarityThreshold: cfg.Scoring.SimilarityThreshold,
	}
}

// Score 判分。qType 为空时按主观题处理
func (s *Scorer) Score(predicted, reference string, qType QuestionType) (*Result, error) {
	switch qType {
	case MultipleChoice:
		return s.scoreMultipleChoice(predicted, reference), nil
	case ShortAnswer, Essay, "":
		return s.scoreShortAnswer(normalizeAnswer(predicted), normalizeAnswer(reference)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuestionType, qType)
	}
}

// scoreMultipleChoice 客观题：选项号完全一致。
// 选项号从原始文本提取，保证 ①-⑤ 不被规范化吞掉。
func (s *Scorer) scoreMultipleChoice(predicted, reference string) *Result {
	predNum, predOK := extractChoiceNumber(predicted)
	refNum, refOK := extractChoiceNumber(reference)

	isCorrect := predOK && refOK && predNum == refNum
	score := 0.0
	if isCorrect {
		score = 1.0
	}

	label := "선택지 불일치"
	if isCorrect {
		label = "선택지 일치"
	}

	return &Result{
		IsCorrect:   isCorrect,
		Score:       score,
		Explanation: fmt.Sprintf("%s (정답: %s, 예측: %s)", label, formatChoice(refNum, refOK), formatChoice(predNum, predOK)),
	}
}

// scoreShortAnswer 主观题：相似度判分
func (s *Scorer) scoreShortAnswer(predicted, reference string) *Result {
	if predicted == reference && predicted != "" {
		return &Result{
			IsCorrect:   true,
			Score:       1.0,
			Explanation: "정답과 완전히 일치",
		}
	}

	similarity := similarityRatio(predicted, reference)
	isCorrect := similarity >= s.exactMatchThreshold

	var explanation string
	switch {
	case similarity >= s.exactMatchThreshold:
		explanation = fmt.Sprintf("정답과 매우 유사 (유사도: %.2f)", similarity)
	case similarity >= s.similarityThreshold:
		explanation = fmt.Sprintf("부분 정답 (유사도: %.2f)", similarity)
	default:
		explanation = fmt.Sprintf("오답 (유사도: %.2f)", similarity)
	}

	return &Result{
		IsCorrect:   isCorrect,
		Score:       similarity,
		Explanation: explanation,
	}
}

// ScoreWithPartialCredit 关键词部分给分：关键词 70% + 相似度 30%
func (s *Scorer) ScoreWithPartialCredit(predicted, reference string, keywords []string) *Result {
	predNormalized := normalizeAnswer(predicted)

	matched := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if normalized := normalizeAnswer(kw); normalized != "" && strings.Contains(predNormalized, normalized) {
			matched = append(matched, kw)
		}
	}

	keywordScore := 0.0
	if len(keywords) > 0 {
		keywordScore = float64(len(matched)) / float64(len(keywords))
	}

	similarityScore := similarityRatio(predNormalized, normalizeAnswer(reference))

	finalScore := keywordScore*0.7 + similarityScore*0.3

	return &Result{
		IsCorrect:       finalScore >= s.exactMatchThreshold,
		Score:           finalScore,
		Explanation:     fmt.Sprintf("키워드 매칭: %d/%d (점수: %.2f)", len(matched), len(keywords), finalScore),
		MatchedKeywords: matched,
	}
}

// normalizeAnswer 规范化：小写、合并空白、去掉字母/数字/韩文/空格以外的字符
func normalizeAnswer(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = strings.Join(strings.Fields(text), " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r >= 0xAC00 && r <= 0xD7A3: // 韩文音节
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// circledDigits 带圈数字选项
var circledDigits = map[rune]int{'①': 1, '②': 2, '③': 3, '④': 4, '⑤': 5}

// extractChoiceNumber 提取选项号：先找数字串，再找带圈数字
func extractChoiceNumber(text string) (int, bool) {
	start := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, err := strconv.Atoi(text[start:i])
			if err == nil {
				return n, true
			}
			start = -1
		}
	}
	if start >= 0 {
		if n, err := strconv.Atoi(text[start:]); err == nil {
			return n, true
		}
	}

	for _, r := range text {
		if n, ok := circledDigits[r]; ok {
			return n, true
		}
	}

	return 0, false
}

// formatChoice 选项号展示，缺失时显示"없음"
func formatChoice(n int, ok bool) string {
	if !ok {
		return "없음"
	}
	return strconv.Itoa(n)
}
