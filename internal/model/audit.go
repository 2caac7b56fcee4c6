package model

import "time"

// RAGAttemptLog RAG 问答日志
type RAGAttemptLog struct {
	ID                 uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Question           string    `json:"question" gorm:"type:text;not null"`
	Department         string    `json:"department" gorm:"type:varchar(20);not null;index"`
	Answer             string    `json:"answer" gorm:"type:text;not null"`
	References         JSONArray `json:"references" gorm:"type:json;not null"`
	Confidence         *float64  `json:"confidence,omitempty"`
	Model              string    `json:"model" gorm:"type:varchar(100);not null"`
	PromptVersion      string    `json:"prompt_version" gorm:"type:varchar(50);not null"`
	LatencyMS          int       `json:"latency_ms" gorm:"not null"`
	TokensUsed         *int      `json:"tokens_used,omitempty"`
	SearchResultsCount *int      `json:"search_results_count,omitempty"`
	AvgSearchScore     *float64  `json:"avg_search_score,omitempty"`
	TraceID            string    `json:"trace_id" gorm:"type:varchar(100);not null;index"`
	UserID             string    `json:"user_id,omitempty" gorm:"type:varchar(100);index"`
	SessionID          string    `json:"session_id,omitempty" gorm:"type:varchar(100);index"`
	Metadata           JSON      `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (RAGAttemptLog) TableName() string {
	return "rag_attempt_log"
}

// AuditLog 统一审计日志
type AuditLog struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventType    string    `json:"event_type" gorm:"type:varchar(50);not null;index:ix_audit_log_event"`
	Action       string    `json:"action" gorm:"type:varchar(100);not null"`
	TraceID      string    `json:"trace_id" gorm:"type:varchar(100);not null;index"`
	UserID       string    `json:"user_id,omitempty" gorm:"type:varchar(100);index"`
	IPAddress    string    `json:"ip_address,omitempty" gorm:"type:varchar(45)"`
	UserAgent    string    `json:"user_agent,omitempty" gorm:"type:text"`
	RequestData  JSON      `json:"request_data,omitempty" gorm:"type:json"`
	ResponseData JSON      `json:"response_data,omitempty" gorm:"type:json"`
	Status       string    `json:"status" gorm:"type:varchar(20);not null"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"type:text"`
	Metadata     JSON      `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_log"
}
