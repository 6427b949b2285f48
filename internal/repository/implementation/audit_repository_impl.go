package implementation

import (
	"context"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/mapper"
	"teletherapy-be/internal/model"
	"teletherapy-be/internal/repository/contract"
	"teletherapy-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	return &AuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	modelLog := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(modelLog).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(modelLog)
	return nil
}

func (r *AuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	var modelLogs []*model.AuditLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelLogs), nil
}
