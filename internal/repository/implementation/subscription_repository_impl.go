package implementation

import (
	"context"
	"errors"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/mapper"
	"teletherapy-be/internal/model"
	"teletherapy-be/internal/repository/contract"
	"teletherapy-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Plans

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	modelPlan := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(modelPlan).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(modelPlan)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	modelPlan := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Save(modelPlan).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(modelPlan)
	return nil
}

func (r *SubscriptionRepositoryImpl) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SubscriptionPlan{}).Error
}

func (r *SubscriptionRepositoryImpl) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	var modelPlan model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPlan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PlanToEntity(&modelPlan), nil
}

func (r *SubscriptionRepositoryImpl) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var modelPlans []*model.SubscriptionPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPlans).Error; err != nil {
		return nil, err
	}

	return r.mapper.PlanToEntities(modelPlans), nil
}

// Client subscriptions

func (r *SubscriptionRepositoryImpl) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	modelSub := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Create(modelSub).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(modelSub)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	modelSub := r.mapper.ToModel(subscription)
	if err := r.db.WithContext(ctx).Save(modelSub).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.ToEntity(modelSub)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var modelSub model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelSub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelSub), nil
}

func (r *SubscriptionRepositoryImpl) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var modelSubs []*model.Subscription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSubs).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelSubs), nil
}

// Dashboard / Admin Stats

func (r *SubscriptionRepositoryImpl) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Table("subscriptions").
		Joins("JOIN subscription_plans ON subscriptions.plan_id = subscription_plans.id").
		Where("subscriptions.payment_status = ?", "completed").
		Select("COALESCE(SUM(subscription_plans.price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *SubscriptionRepositoryImpl) CountActiveSubscribers(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("status = ?", "active").
		Count(&count).Error
	return int(count), err
}
