package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(l *model.AuditLog) *entity.AuditLog {
	if l == nil {
		return nil
	}
	return &entity.AuditLog{
		Id:         l.Id,
		ActorId:    l.ActorId,
		ActionKind: l.ActionKind,
		TargetId:   l.TargetId,
		Details:    map[string]interface{}(l.Details),
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(l *entity.AuditLog) *model.AuditLog {
	if l == nil {
		return nil
	}
	return &model.AuditLog{
		Id:         l.Id,
		ActorId:    l.ActorId,
		ActionKind: l.ActionKind,
		TargetId:   l.TargetId,
		Details:    datatypes.JSONMap(l.Details),
		CreatedAt:  l.CreatedAt,
	}
}

func (m *AuditMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
