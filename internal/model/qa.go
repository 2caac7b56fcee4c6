package model

import "time"

// QAMaster 题目/标准答案主表
type QAMaster struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Domain      string    `json:"domain" gorm:"type:varchar(100);index"`
	QType       string    `json:"q_type" gorm:"type:varchar(50);not null;index:ix_qa_master_domain_qtype"`
	Question    string    `json:"question" gorm:"type:text;not null"`
	Answer      string    `json:"answer" gorm:"type:text;not null"`
	Choices     JSONArray `json:"choices,omitempty" gorm:"type:json"`
	Explanation string    `json:"explanation,omitempty" gorm:"type:text"`
	Metadata    JSON      `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (QAMaster) TableName() string {
	return "qa_master"
}

// QAAttemptLog 答题尝试日志
type QAAttemptLog struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	QAID            *uint     `json:"qa_id,omitempty" gorm:"index"`
	Question        string    `json:"question" gorm:"type:text;not null"`
	PredictedAnswer string    `json:"predicted_answer" gorm:"type:text;not null"`
	CorrectAnswer   string    `json:"correct_answer,omitempty" gorm:"type:text"`
	IsCorrect       *bool     `json:"is_correct,omitempty"`
	Score           *float64  `json:"score,omitempty"`
	Model           string    `json:"model" gorm:"type:varchar(100);not null"`
	PromptVersion   string    `json:"prompt_version" gorm:"type:varchar(50);not null"`
	LatencyMS       int       `json:"latency_ms" gorm:"not null"`
	TokensUsed      *int      `json:"tokens_used,omitempty"`
	TraceID         string    `json:"trace_id" gorm:"type:varchar(100);not null;index"`
	UserID          string    `json:"user_id,omitempty" gorm:"type:varchar(100);index"`
	SessionID       string    `json:"session_id,omitempty" gorm:"type:varchar(100);index"`
	Metadata        JSON      `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (QAAttemptLog) TableName() string {
	return "qa_attempt_log"
}
