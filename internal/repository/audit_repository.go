package repository

import (
	"context"

	"github.com/ashwinyue/medi-rag/internal/model"
	"gorm.io/gorm"
)

// AuditRepository 审计日志数据访问
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository 创建审计仓库
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateRAGLog 保存 RAG 问答日志
func (r *AuditRepository) CreateRAGLog(ctx context.Context, log *model.RAGAttemptLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateAuditLog 保存审计日志
func (r *AuditRepository) CreateAuditLog(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetRAGLogsByTrace 按追踪 ID 查询 RAG 日志
func (r *AuditRepository) GetRAGLogsByTrace(ctx context.Context, traceID string) ([]*model.RAGAttemptLog, error) {
	var logs []*model.RAGAttemptLog
	err := r.db.WithContext(ctx).Where("trace_id = ?", traceID).Find(&logs).Error
	return logs, err
}

// GetRAGLogsByDepartment 按科室查询 RAG 日志
func (r *AuditRepository) GetRAGLogsByDepartment(ctx context.Context, department string, limit int) ([]*model.RAGAttemptLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []*model.RAGAttemptLog
	err := r.db.WithContext(ctx).Where("department = ?", department).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GetAuditLogsByUser 按用户查询审计日志
func (r *AuditRepository) GetAuditLogsByUser(ctx context.Context, userID string, limit int) ([]*model.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []*model.AuditLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
