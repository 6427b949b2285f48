package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:         p.Id,
		SessionId:  p.SessionId,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     entity.PaymentStatus(p.Status),
		Kind:       entity.PaymentKind(p.Kind),
		GatewayRef: p.GatewayRef,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:         p.Id,
		SessionId:  p.SessionId,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		Kind:       string(p.Kind),
		GatewayRef: p.GatewayRef,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(payments []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(payments))
	for i, p := range payments {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
