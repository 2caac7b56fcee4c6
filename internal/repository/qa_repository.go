package repository

import (
	"context"

	"github.com/ashwinyue/medi-rag/internal/model"
	"gorm.io/gorm"
)

// QARepository 题库数据访问
type QARepository struct {
	db *gorm.DB
}

// NewQARepository 创建题库仓库
func NewQARepository(db *gorm.DB) *QARepository {
	return &QARepository{db: db}
}

// GetByID 获取题目
func (r *QARepository) GetByID(ctx context.Context, id uint) (*model.QAMaster, error) {
	var qa model.QAMaster
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&qa).Error
	if err != nil {
		return nil, err
	}
	return &qa, nil
}

// Create 创建题目
func (r *QARepository) Create(ctx context.Context, qa *model.QAMaster) error {
	return r.db.WithContext(ctx).Create(qa).Error
}

// ListByDomain 按领域列出题目
func (r *QARepository) ListByDomain(ctx context.Context, domain string, limit int) ([]*model.QAMaster, error) {
	var qas []*model.QAMaster
	query := r.db.WithContext(ctx).Order("id").Limit(limit)
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}
	err := query.Find(&qas).Error
	return qas, err
}

// CreateAttemptLog 保存答题尝试日志
func (r *QARepository) CreateAttemptLog(ctx context.Context, log *model.QAAttemptLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListAttemptsByTrace 按追踪 ID 查询答题日志
func (r *QARepository) ListAttemptsByTrace(ctx context.Context, traceID string) ([]*model.QAAttemptLog, error) {
	var logs []*model.QAAttemptLog
	err := r.db.WithContext(ctx).Where("trace_id = ?", traceID).Find(&logs).Error
	return logs, err
}
