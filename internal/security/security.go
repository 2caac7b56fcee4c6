// Package security 提供输入净化与 PII 脱敏工具
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxInputLength = 10000

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeInput 清理用户输入：截断、去控制字符、合并空白
func SanitizeInput(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	if maxLength <= 0 || maxLength > maxInputLength {
		maxLength = maxInputLength
	}

	runes := []rune(text)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}

	// 去除控制字符（保留换行、回车、制表符）
	var b strings.Builder
	b.Grow(len(runes))
	for _, r := range runes {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// GenerateTraceID 生成请求追踪 ID
func GenerateTraceID() string {
	return "req_" + uuid.New().String()
}

// AnonymizeIP IP 地址匿名化：IPv4 末段置零，IPv6 保留前四组
func AnonymizeIP(ip string) string {
	if ip == "" {
		return ""
	}

	if strings.Contains(ip, ".") {
		parts := strings.Split(ip, ".")
		if len(parts) == 4 {
			return strings.Join(parts[:3], ".") + ".0"
		}
	}

	if strings.Contains(ip, ":") {
		parts := strings.Split(ip, ":")
		if len(parts) > 4 {
			anonymized := parts[:4]
			for i := 4; i < len(parts); i++ {
				anonymized = append(anonymized, "0000")
			}
			return strings.Join(anonymized, ":")
		}
	}

	return ip
}

// AnonymousUserID 用户标识符转匿名 ID
func AnonymousUserID(identifier string) string {
	if identifier == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(identifier))
	return fmt.Sprintf("user_%s", hex.EncodeToString(sum[:])[:16])
}

// ========== PII 脱敏 ==========

// PIIMasker 个人信息脱敏器
type PIIMasker struct {
	fields   map[string]struct{}
	patterns []*regexp.Regexp
}

// NewPIIMasker 创建脱敏器，fields 为需要整体屏蔽的字段名
func NewPIIMasker(fields []string) *PIIMasker {
	fieldSet := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		fieldSet[strings.ToLower(f)] = struct{}{}
	}
	return &PIIMasker{
		fields: fieldSet,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d{6}-?\d{7}`),                                    // 居民登记号
			regexp.MustCompile(`01[0-9]-?\d{3,4}-?\d{4}`),                         // 手机号
			regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), // 邮箱
			regexp.MustCompile(`\d{4}-?\d{4}-?\d{4}-?\d{4}`),                      // 银行卡号
		},
	}
}

// MaskText 对文本做模式脱敏
func (m *PIIMasker) MaskText(text string) string {
	if text == "" {
		return text
	}
	masked := text
	for _, p := range m.patterns {
		masked = p.ReplaceAllStringFunc(masked, maskMatch)
	}
	return masked
}

// MaskMap 对 map 做脱敏，PII 字段整体屏蔽，字符串值做模式脱敏
func (m *PIIMasker) MaskMap(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}

	masked := make(map[string]interface{}, len(data))
	for key, value := range data {
		if _, ok := m.fields[strings.ToLower(key)]; ok {
			masked[key] = "***MASKED***"
			continue
		}
		switch v := value.(type) {
		case string:
			masked[key] = m.MaskText(v)
		case map[string]interface{}:
			masked[key] = m.MaskMap(v)
		case []interface{}:
			items := make([]interface{}, len(v))
			for i, item := range v {
				switch iv := item.(type) {
				case string:
					items[i] = m.MaskText(iv)
				case map[string]interface{}:
					items[i] = m.MaskMap(iv)
				default:
					items[i] = item
				}
			}
			masked[key] = items
		default:
			masked[key] = value
		}
	}
	return masked
}

// maskMatch 保留前两位，其余替换为 *
func maskMatch(s string) string {
	runes := []rune(s)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-2)
}
