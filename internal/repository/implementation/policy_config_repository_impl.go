package implementation

import (
	"context"
	"errors"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/mapper"
	"teletherapy-be/internal/model"
	"teletherapy-be/internal/repository/contract"

	"gorm.io/gorm"
)

type PolicyConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PolicyConfigMapper
}

func NewPolicyConfigRepository(db *gorm.DB) contract.PolicyConfigRepository {
	return &PolicyConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewPolicyConfigMapper(),
	}
}

func (r *PolicyConfigRepositoryImpl) FindCurrent(ctx context.Context) (*entity.PolicyConfig, error) {
	var modelConfig model.PolicyConfig
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&modelConfig).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelConfig), nil
}

func (r *PolicyConfigRepositoryImpl) Save(ctx context.Context, config *entity.PolicyConfig) error {
	modelConfig := r.mapper.ToModel(config)
	if err := r.db.WithContext(ctx).Save(modelConfig).Error; err != nil {
		return err
	}
	*config = *r.mapper.ToEntity(modelConfig)
	return nil
}
