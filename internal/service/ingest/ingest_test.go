package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/ashwinyue/medi-rag/internal/service/department"
	"github.com/ashwinyue/medi-rag/internal/service/types"
)

func TestGroupByDepartment(t *testing.T) {
	docs := []*Document{
		{Content: "내과 문서", Department: department.IM},
		{Content: "응급 문서", Department: department.EM},
		{Content: "내과 문서 2", Department: department.IM},
	}

	grouped, err := groupByDepartment(docs)
	if err != nil {
		t.Fatalf("groupByDepartment() error = %v", err)
	}

	if len(grouped[department.IM]) != 2 {
		t.Errorf("IM documents = %d, want 2", len(grouped[department.IM]))
	}
	if len(grouped[department.EM]) != 1 {
		t.Errorf("EM documents = %d, want 1", len(grouped[department.EM]))
	}
}

func TestGroupByDepartmentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{"empty content", &Document{Content: "", Department: department.IM}},
		{"unknown department", &Document{Content: "문서", Department: department.Code("DERM")}},
		{"missing department", &Document{Content: "문서"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := groupByDepartment([]*Document{tt.doc})
			if !errors.Is(err, types.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSplitDocumentsCarriesMetadata(t *testing.T) {
	docs := []*Document{
		{
			Title:      "당뇨병 관리 지침",
			Content:    "2형 당뇨병 환자는 식이요법, 운동, 약물치료를 병행해야 한다.",
			Source:     "대한당뇨병학회",
			Department: department.IM,
			Metadata:   map[string]interface{}{"category": "endocrinology"},
		},
		{
			Title:      "고혈압 진단과 치료",
			Content:    "고혈압은 수축기 혈압 140mmHg 이상으로 정의된다.",
			Source:     "대한고혈압학회",
			Department: department.IM,
		},
	}

	chunks, err := splitDocuments(context.Background(), docs)
	if err != nil {
		t.Fatalf("splitDocuments() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2 for short documents", len(chunks))
	}

	first := chunks[0]
	if first.ID == "" {
		t.Error("chunk ID is empty")
	}
	if first.MetaData["title"] != "당뇨병 관리 지침" {
		t.Errorf("title = %v", first.MetaData["title"])
	}
	if first.MetaData["source"] != "대한당뇨병학회" {
		t.Errorf("source = %v", first.MetaData["source"])
	}
	if first.MetaData["department"] != "IM" {
		t.Errorf("department = %v", first.MetaData["department"])
	}
	if first.MetaData["category"] != "endocrinology" {
		t.Errorf("category = %v", first.MetaData["category"])
	}
	if _, ok := first.MetaData["chunk_index"]; !ok {
		t.Error("chunk_index is missing")
	}
}

func TestDocumentToESFields(t *testing.T) {
	docs := []*Document{
		{
			Title:      "감기와 독감의 차이",
			Content:    "감기는 주로 코와 목에 증상이 나타난다.",
			Source:     "질병관리청",
			Department: department.COMMON,
		},
	}

	chunks, err := splitDocuments(context.Background(), docs)
	if err != nil {
		t.Fatalf("splitDocuments() error = %v", err)
	}

	fields := documentToESFields(chunks[0])

	content, ok := fields["content"]
	if !ok {
		t.Fatal("content field is missing")
	}
	if content.EmbedKey != "content_vector" {
		t.Errorf("content EmbedKey = %q, want content_vector", content.EmbedKey)
	}
	if fields["department"].Value != "COMMON" {
		t.Errorf("department field = %v", fields["department"].Value)
	}
	if fields["department"].EmbedKey != "" {
		t.Error("metadata fields must not be embedded")
	}
}

func TestBuildIndexMapping(t *testing.T) {
	mapping := buildIndexMapping(0)

	properties := mapping["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	vector := properties["content_vector"].(map[string]interface{})

	if vector["dims"] != 1536 {
		t.Errorf("default dims = %v, want 1536", vector["dims"])
	}
	if vector["similarity"] != "cosine" {
		t.Errorf("similarity = %v, want cosine", vector["similarity"])
	}

	mapping = buildIndexMapping(768)
	properties = mapping["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	if properties["content_vector"].(map[string]interface{})["dims"] != 768 {
		t.Error("custom dims not applied")
	}
}

func TestIndexDocumentsValidation(t *testing.T) {
	svc := NewService(nil, nil, nil)

	if _, err := svc.IndexDocuments(context.Background(), nil); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("empty documents error = %v, want ErrInvalidArgument", err)
	}
}

func TestSampleDocuments(t *testing.T) {
	docs := SampleDocuments()
	if len(docs) != 10 {
		t.Fatalf("sample documents = %d, want 10", len(docs))
	}

	byDept := make(map[department.Code]int)
	for i, doc := range docs {
		if doc.Title == "" || doc.Content == "" || doc.Source == "" {
			t.Errorf("document %d has empty fields", i)
		}
		byDept[doc.Department]++
	}

	for _, dept := range department.All() {
		if byDept[dept] != 2 {
			t.Errorf("department %s documents = %d, want 2", dept, byDept[dept])
		}
	}
}
