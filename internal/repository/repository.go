package repository

import (
	"gorm.io/gorm"
)

// Repositories 仓库集合
type Repositories struct {
	QA    *QARepository
	Audit *AuditRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		QA:    NewQARepository(db),
		Audit: NewAuditRepository(db),
	}
}
