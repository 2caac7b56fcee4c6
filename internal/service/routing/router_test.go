package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/llm"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== Mock 实现 ==========

type mockChatModel struct {
	response string
	err      error
	calls    int
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.response}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in mock")
}

func newTestService(cm *mockChatModel) *Service {
	if cm == nil {
		return NewService(nil)
	}
	return NewService(llm.NewClient(cm, nil, "gpt-4o-mini", 0.3, 2000))
}

// ========== 测试 ==========

func TestRouteEmergencyFirst(t *testing.T) {
	// 即使 LLM 会返回别的科室，急诊信号也必须优先
	cm := &mockChatModel{response: "IM"}
	svc := newTestService(cm)

	got := svc.Route(context.Background(), "갑자기 흉통이 심합니다", true)
	if got != department.EM {
		t.Errorf("Route() = %v, want EM", got)
	}
	if cm.calls != 0 {
		t.Errorf("llm should not be called for emergency, calls = %d", cm.calls)
	}
}

func TestRouteKeywordWithoutLLM(t *testing.T) {
	cm := &mockChatModel{response: "COMMON"}
	svc := newTestService(cm)

	got := svc.Route(context.Background(), "임신 중 영양제 복용", false)
	if got != department.OBGYN {
		t.Errorf("Route() = %v, want OBGYN", got)
	}
	if cm.calls != 0 {
		t.Errorf("llm should not be called when useLLM=false, calls = %d", cm.calls)
	}
}

func TestRouteLLMClassification(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     department.Code
	}{
		{"有效代码", "IM", department.IM},
		{"小写代码", "obgyn", department.OBGYN},
		{"带解释的输出", "PED 소아 관련 질문입니다", department.PED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := &mockChatModel{response: tt.response}
			svc := newTestService(cm)

			got := svc.Route(context.Background(), "건강 관련 질문입니다", true)
			if got != tt.want {
				t.Errorf("Route() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRouteLLMOverridesKeyword(t *testing.T) {
	// 关键词命中但 useLLM=true 时以 LLM 结果为准
	cm := &mockChatModel{response: "IM"}
	svc := newTestService(cm)

	got := svc.Route(context.Background(), "소아 약물 질문", true)
	if got != department.IM {
		t.Errorf("Route() = %v, want IM", got)
	}
	if cm.calls != 1 {
		t.Errorf("llm should be called once, calls = %d", cm.calls)
	}
}

func TestRouteLLMFailureFallsBackToKeyword(t *testing.T) {
	cm := &mockChatModel{err: errors.New("api unavailable")}
	svc := newTestService(cm)

	got := svc.Route(context.Background(), "당뇨 약물 복용 질문", true)
	if got != department.IM {
		t.Errorf("Route() = %v, want IM keyword fallback", got)
	}
}

func TestRouteInvalidLLMCodeFallsBack(t *testing.T) {
	cm := &mockChatModel{response: "DERM"}
	svc := newTestService(cm)

	// 无关键词命中且 LLM 输出无效代码 → COMMON
	got := svc.Route(context.Background(), "건강검진 주기가 궁금해요", true)
	if got != department.COMMON {
		t.Errorf("Route() = %v, want COMMON", got)
	}
}

func TestRouteNoSignalsAtAll(t *testing.T) {
	// LLM 未配置也必须返回结果
	svc := newTestService(nil)

	got := svc.Route(context.Background(), "안녕하세요", true)
	if got != department.COMMON {
		t.Errorf("Route() = %v, want COMMON", got)
	}
}

func TestValidateDepartment(t *testing.T) {
	svc := newTestService(nil)

	if dept, ok := svc.ValidateDepartment("em"); !ok || dept != department.EM {
		t.Errorf("ValidateDepartment(em) = (%v, %v), want (EM, true)", dept, ok)
	}
	if _, ok := svc.ValidateDepartment("UNKNOWN"); ok {
		t.Error("ValidateDepartment(UNKNOWN) should fail")
	}
}
