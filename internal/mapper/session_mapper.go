package mapper

import (
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:                 s.Id,
		TherapistId:        s.TherapistId,
		ClientId:           s.ClientId,
		ScheduledDate:      s.ScheduledDate,
		ScheduledTime:      s.ScheduledTime,
		DurationMinutes:    s.DurationMinutes,
		Kind:               entity.SessionKind(s.Kind),
		Status:             entity.SessionStatus(s.Status),
		Price:              s.Price,
		PaymentStatus:      entity.PaymentStatus(s.PaymentStatus),
		MeetingLink:        s.MeetingLink,
		Notes:              s.Notes,
		ActualStartTime:    s.ActualStartTime,
		ActualEndTime:      s.ActualEndTime,
		CancellationReason: s.CancellationReason,
		CancelledAt:        s.CancelledAt,
		CancelledBy:        s.CancelledBy,
		LoggedByTherapist:  s.LoggedByTherapist,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:                 s.Id,
		TherapistId:        s.TherapistId,
		ClientId:           s.ClientId,
		ScheduledDate:      s.ScheduledDate,
		ScheduledTime:      s.ScheduledTime,
		DurationMinutes:    s.DurationMinutes,
		Kind:               string(s.Kind),
		Status:             string(s.Status),
		Price:              s.Price,
		PaymentStatus:      string(s.PaymentStatus),
		MeetingLink:        s.MeetingLink,
		Notes:              s.Notes,
		ActualStartTime:    s.ActualStartTime,
		ActualEndTime:      s.ActualEndTime,
		CancellationReason: s.CancellationReason,
		CancelledAt:        s.CancelledAt,
		CancelledBy:        s.CancelledBy,
		LoggedByTherapist:  s.LoggedByTherapist,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
