package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"

	"gorm.io/datatypes"
)

type TherapistMapper struct{}

func NewTherapistMapper() *TherapistMapper {
	return &TherapistMapper{}
}

func (m *TherapistMapper) ToEntity(t *model.Therapist) *entity.Therapist {
	if t == nil {
		return nil
	}
	docs := make([]entity.ComplianceDocument, 0, len(t.Documents))
	for _, d := range t.Documents {
		if doc := m.DocumentToEntity(d); doc != nil {
			docs = append(docs, *doc)
		}
	}
	return &entity.Therapist{
		Id:             t.Id,
		UserId:         t.UserId,
		CredentialTier: entity.CredentialTier(t.CredentialTier),
		HourlyRate:     t.HourlyRate,
		Status:         entity.TherapistStatus(t.Status),
		TotalSessions:  t.TotalSessions,
		Bio:            t.Bio,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Documents:      docs,
	}
}

func (m *TherapistMapper) ToModel(t *entity.Therapist) *model.Therapist {
	if t == nil {
		return nil
	}
	// Documents are persisted through dedicated repository calls, not via
	// the therapist row.
	return &model.Therapist{
		Id:             t.Id,
		UserId:         t.UserId,
		CredentialTier: string(t.CredentialTier),
		HourlyRate:     t.HourlyRate,
		Status:         string(t.Status),
		TotalSessions:  t.TotalSessions,
		Bio:            t.Bio,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (m *TherapistMapper) DocumentToEntity(d *model.ComplianceDocument) *entity.ComplianceDocument {
	if d == nil {
		return nil
	}
	return &entity.ComplianceDocument{
		Id:          d.Id,
		TherapistId: d.TherapistId,
		Type:        entity.DocumentType(d.Type),
		Verified:    d.Verified,
		VerifiedAt:  d.VerifiedAt,
		VerifiedBy:  d.VerifiedBy,
		Metadata:    map[string]interface{}(d.Metadata),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *TherapistMapper) DocumentToModel(d *entity.ComplianceDocument) *model.ComplianceDocument {
	if d == nil {
		return nil
	}
	return &model.ComplianceDocument{
		Id:          d.Id,
		TherapistId: d.TherapistId,
		Type:        string(d.Type),
		Verified:    d.Verified,
		VerifiedAt:  d.VerifiedAt,
		VerifiedBy:  d.VerifiedBy,
		Metadata:    datatypes.JSONMap(d.Metadata),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *TherapistMapper) ClientToEntity(c *model.Client) *entity.Client {
	if c == nil {
		return nil
	}
	return &entity.Client{
		Id:                  c.Id,
		UserId:              c.UserId,
		AssignedTherapistId: c.AssignedTherapistId,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (m *TherapistMapper) ClientToModel(c *entity.Client) *model.Client {
	if c == nil {
		return nil
	}
	return &model.Client{
		Id:                  c.Id,
		UserId:              c.UserId,
		AssignedTherapistId: c.AssignedTherapistId,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (m *TherapistMapper) ToEntities(therapists []*model.Therapist) []*entity.Therapist {
	entities := make([]*entity.Therapist, len(therapists))
	for i, t := range therapists {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TherapistMapper) DocumentToEntities(docs []*model.ComplianceDocument) []*entity.ComplianceDocument {
	entities := make([]*entity.ComplianceDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}

func (m *TherapistMapper) ClientToEntities(clients []*model.Client) []*entity.Client {
	entities := make([]*entity.Client, len(clients))
	for i, c := range clients {
		entities[i] = m.ClientToEntity(c)
	}
	return entities
}
