package security

import (
	"strings"
	"testing"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{
			name:      "空输入",
			input:     "",
			maxLength: 100,
			want:      "",
		},
		{
			name:      "普通文本保持不变",
			input:     "당뇨병 관리 방법은?",
			maxLength: 100,
			want:      "당뇨병 관리 방법은?",
		},
		{
			name:      "连续空白合并",
			input:     "흉통이   있어요\n\n숨쉬기  힘들어요",
			maxLength: 100,
			want:      "흉통이 있어요 숨쉬기 힘들어요",
		},
		{
			name:      "控制字符去除",
			input:     "hello\x00\x01world",
			maxLength: 100,
			want:      "helloworld",
		},
		{
			name:      "超长截断",
			input:     strings.Repeat("가", 50),
			maxLength: 10,
			want:      strings.Repeat("가", 10),
		},
		{
			name:      "首尾空白去除",
			input:     "  질문  ",
			maxLength: 100,
			want:      "질문",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeInput(tt.input, tt.maxLength)
			if got != tt.want {
				t.Errorf("SanitizeInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	if !strings.HasPrefix(id, "req_") {
		t.Errorf("trace id should have req_ prefix, got %q", id)
	}
	if id == GenerateTraceID() {
		t.Error("trace ids should be unique")
	}
}

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want string
	}{
		{"IPv4", "192.168.1.100", "192.168.1.0"},
		{"IPv6", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000:0000:0000:0000:0000"},
		{"空输入", "", ""},
		{"非法格式原样返回", "not-an-ip", "not-an-ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnonymizeIP(tt.ip); got != tt.want {
				t.Errorf("AnonymizeIP(%q) = %q, want %q", tt.ip, got, tt.want)
			}
		})
	}
}

func TestAnonymousUserID(t *testing.T) {
	id := AnonymousUserID("user@example.com")
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("anonymous id should have user_ prefix, got %q", id)
	}
	if len(id) != len("user_")+16 {
		t.Errorf("anonymous id should carry 16 hex chars, got %q", id)
	}
	if id != AnonymousUserID("user@example.com") {
		t.Error("same identifier should map to same anonymous id")
	}
	if id == AnonymousUserID("other@example.com") {
		t.Error("different identifiers should map to different anonymous ids")
	}
	if AnonymousUserID("") != "" {
		t.Error("empty identifier should map to empty id")
	}
}

func TestPIIMaskerMaskText(t *testing.T) {
	masker := NewPIIMasker(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "手机号脱敏",
			input: "연락처는 010-1234-5678 입니다",
			want:  "연락처는 01*********** 입니다",
		},
		{
			name:  "邮箱脱敏",
			input: "메일 test@example.com 으로",
			want:  "메일 te************** 으로",
		},
		{
			name:  "无 PII 保持不变",
			input: "당뇨병 환자의 목표 혈당",
			want:  "당뇨병 환자의 목표 혈당",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := masker.MaskText(tt.input); got != tt.want {
				t.Errorf("MaskText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPIIMaskerMaskMap(t *testing.T) {
	masker := NewPIIMasker([]string{"name", "phone"})

	data := map[string]interface{}{
		"name":     "홍길동",
		"question": "이메일 a@b.com 관련 질문",
		"age":      42,
		"nested": map[string]interface{}{
			"phone": "010-1234-5678",
		},
	}

	masked := masker.MaskMap(data)

	if masked["name"] != "***MASKED***" {
		t.Errorf("PII field should be fully masked, got %v", masked["name"])
	}
	if masked["age"] != 42 {
		t.Errorf("non-string value should pass through, got %v", masked["age"])
	}
	if s, ok := masked["question"].(string); !ok || strings.Contains(s, "a@b.com") {
		t.Errorf("pattern in string value should be masked, got %v", masked["question"])
	}
	nested, ok := masked["nested"].(map[string]interface{})
	if !ok || nested["phone"] != "***MASKED***" {
		t.Errorf("nested PII field should be masked, got %v", masked["nested"])
	}
}
