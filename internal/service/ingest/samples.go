package ingest

import "github.com/ashwinyue/medi-rag/internal/service/department"

// SampleDocuments 内置示例医疗文档，用于初始化索引
func SampleDocuments() []*Document {
	return []*Document{
		{
			Title:      "급성 관상동맥 증후군 가이드라인",
			Content:    "급성 관상동맥 증후군은 심근경색과 불안정 협심증을 포함하는 응급 질환이다. 주요 증상으로 흉통, 호흡곤란, 식은땀이 있으며, 즉시 응급실 방문이 필요하다.",
			Source:     "대한심장학회",
			Department: department.EM,
			Metadata:   map[string]interface{}{"published_at": "2023-01-15", "category": "cardiac"},
		},
		{
			Title:      "뇌졸중 응급 대응",
			Content:    "뇌졸중의 주요 증상은 FAST로 기억한다. Face(얼굴 마비), Arm(팔 약화), Speech(언어 장애), Time(시간이 중요). 증상 발현 시 즉시 119에 연락한다.",
			Source:     "대한신경과학회",
			Department: department.EM,
			Metadata:   map[string]interface{}{"published_at": "2023-03-20", "category": "neurology"},
		},
		{
			Title:      "당뇨병 관리 지침",
			Content:    "2형 당뇨병 환자는 식이요법, 운동, 약물치료를 병행해야 한다. 목표 혈당은 공복 시 80-130mg/dL, 식후 2시간 180mg/dL 이하이다. 정기적인 HbA1c 검사가 필요하다.",
			Source:     "대한당뇨병학회",
			Department: department.IM,
			Metadata:   map[string]interface{}{"published_at": "2023-02-10", "category": "endocrinology"},
		},
		{
			Title:      "고혈압 진단과 치료",
			Content:    "고혈압은 수축기 혈압 140mmHg 이상 또는 이완기 혈압 90mmHg 이상으로 정의된다. 생활습관 개선과 함께 필요시 약물치료를 시행한다.",
			Source:     "대한고혈압학회",
			Department: department.IM,
			Metadata:   map[string]interface{}{"published_at": "2023-01-25", "category": "cardiology"},
		},
		{
			Title:      "영유아 예방접종 일정",
			Content:    "생후 2개월부터 DTaP, 폴리오, B형간염, Hib, 폐렴구균 백신을 접종한다. 12개월에 MMR과 수두 백신을 접종하며, 각 백신은 정해진 간격으로 추가 접종이 필요하다.",
			Source:     "질병관리청",
			Department: department.PED,
			Metadata:   map[string]interface{}{"published_at": "2023-04-01", "category": "vaccination"},
		},
		{
			Title:      "소아 발열 대응",
			Content:    "소아의 발열은 38도 이상을 의미한다. 3개월 미만 영아의 발열은 즉시 의료기관을 방문해야 한다. 해열제는 체온이 38.5도 이상일 때 사용을 고려한다.",
			Source:     "대한소아과학회",
			Department: department.PED,
			Metadata:   map[string]interface{}{"published_at": "2023-02-15", "category": "fever"},
		},
		{
			Title:      "임신 중 약물 안전성",
			Content:    "임신 중에는 FDA 카테고리 A, B 약물이 비교적 안전하다. 와파린, 이소트레티노인 등은 태아 기형을 유발할 수 있어 금기이다. 약물 복용 전 반드시 의사와 상담이 필요하다.",
			Source:     "대한산부인과학회",
			Department: department.OBGYN,
			Metadata:   map[string]interface{}{"published_at": "2023-03-05", "category": "pregnancy"},
		},
		{
			Title:      "산후 출혈 관리",
			Content:    "산후 출혈은 분만 후 500mL(제왕절개는 1000mL) 이상의 출혈을 의미한다. 주요 원인은 자궁 수축부전, 태반 잔류, 산도 열상 등이다. 즉각적인 처치가 필요하다.",
			Source:     "대한산부인과학회",
			Department: department.OBGYN,
			Metadata:   map[string]interface{}{"published_at": "2023-01-30", "category": "postpartum"},
		},
		{
			Title:      "건강한 생활습관",
			Content:    "건강을 유지하기 위해서는 균형잡힌 식사, 규칙적인 운동, 충분한 수면이 중요하다. 금연과 절주를 실천하고, 정기적인 건강검진을 받는 것이 좋다.",
			Source:     "보건복지부",
			Department: department.COMMON,
			Metadata:   map[string]interface{}{"published_at": "2023-01-01", "category": "lifestyle"},
		},
		{
			Title:      "감기와 독감의 차이",
			Content:    "감기는 주로 코와 목에 증상이 나타나며 점진적으로 발병한다. 독감은 고열, 근육통, 두통 등 전신 증상이 급격히 나타난다. 독감은 예방접종으로 예방 가능하다.",
			Source:     "질병관리청",
			Department: department.COMMON,
			Metadata:   map[string]interface{}{"published_at": "2023-02-01", "category": "infectious_disease"},
		},
	}
}
