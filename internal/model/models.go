package model

// AllModels 所有需要自动迁移的模型
var AllModels = []interface{}{
	&QAMaster{},
	&QAAttemptLog{},
	&RAGAttemptLog{},
	&AuditLog{},
}
