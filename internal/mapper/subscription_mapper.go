package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Price:             p.Price,
		BillingCycle:      entity.BillingCycle(p.BillingCycle),
		SessionsPerPeriod: p.SessionsPerPeriod,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:                p.Id,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Price:             p.Price,
		BillingCycle:      string(p.BillingCycle),
		SessionsPerPeriod: p.SessionsPerPeriod,
		IsActive:          p.IsActive,
		SortOrder:         p.SortOrder,
	}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                 s.Id,
		ClientId:           s.ClientId,
		PlanId:             s.PlanId,
		Status:             entity.SubscriptionStatus(s.Status),
		PaymentStatus:      entity.PaymentStatus(s.PaymentStatus),
		StartDate:          s.StartDate,
		NextBillingDate:    s.NextBillingDate,
		AutoRenew:          s.AutoRenew,
		CancellationReason: s.CancellationReason,
		CancelledAt:        s.CancelledAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:                 s.Id,
		ClientId:           s.ClientId,
		PlanId:             s.PlanId,
		Status:             string(s.Status),
		PaymentStatus:      string(s.PaymentStatus),
		StartDate:          s.StartDate,
		NextBillingDate:    s.NextBillingDate,
		AutoRenew:          s.AutoRenew,
		CancellationReason: s.CancellationReason,
		CancelledAt:        s.CancelledAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToEntities(plans []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *SubscriptionMapper) ToEntities(subs []*model.Subscription) []*entity.Subscription {
	entities := make([]*entity.Subscription, len(subs))
	for i, s := range subs {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
