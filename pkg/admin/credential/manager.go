package credential

import (
	"context"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	adminEvents "teletherapy-be/pkg/admin/events"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

// Manager handles credential tier admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewManager creates a new credential manager
func NewManager(logger logger.ILogger, publisher adminEvents.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// UpdateTier moves a therapist to a new credential tier. A downgrade can
// lower the applicable rate cap, so the hourly rate is re-clamped against
// the caps for the new tier.
func (m *Manager) UpdateTier(ctx context.Context, uow unitofwork.UnitOfWork, caps policy.RateCaps, therapistId uuid.UUID, req dto.UpdateCredentialTierRequest) (*dto.UpdateCredentialTierResponse, error) {
	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: therapistId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}

	previousTier := therapist.CredentialTier
	previousRate := therapist.HourlyRate
	newTier := entity.CredentialTier(req.CredentialTier)

	therapist.CredentialTier = newTier
	therapist.HourlyRate = caps.Clamp(therapist.HourlyRate, newTier)
	therapist.UpdatedAt = time.Now()

	if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
		return nil, err
	}

	clamped := therapist.HourlyRate != previousRate
	m.publisher.PublishCredentialTierChanged(ctx, therapist.Id, string(previousTier), string(newTier), clamped)

	return &dto.UpdateCredentialTierResponse{
		TherapistId:  therapist.Id,
		PreviousTier: string(previousTier),
		NewTier:      string(newTier),
		PreviousRate: previousRate,
		NewRate:      therapist.HourlyRate,
		RateClamped:  clamped,
	}, nil
}

// BulkUpdateTier applies the tier change to every listed therapist. One
// failing therapist does not abort the rest; failures are reported back.
func (m *Manager) BulkUpdateTier(ctx context.Context, uow unitofwork.UnitOfWork, caps policy.RateCaps, req dto.BulkUpdateCredentialTierRequest) (*dto.BulkUpdateCredentialTierResponse, error) {
	resp := &dto.BulkUpdateCredentialTierResponse{
		TotalRequested: len(req.TherapistIds),
	}

	for _, id := range req.TherapistIds {
		_, err := m.UpdateTier(ctx, uow, caps, id, dto.UpdateCredentialTierRequest{
			CredentialTier: req.CredentialTier,
		})
		if err != nil {
			m.logger.Warn("CredentialManager", "Bulk tier update failed for therapist", map[string]interface{}{
				"therapist_id": id.String(),
				"error":        err.Error(),
			})
			resp.FailedTherapistIds = append(resp.FailedTherapistIds, id)
			continue
		}
		resp.TotalUpdated++
	}

	return resp, nil
}
