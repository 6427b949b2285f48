package compliance

import (
	"context"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

// Manager handles compliance review admin operations
type Manager struct {
	logger logger.ILogger
}

// NewManager creates a new compliance manager
func NewManager(logger logger.ILogger) *Manager {
	return &Manager{
		logger: logger,
	}
}

// ListPending returns therapists still waiting on document verification.
func (m *Manager) ListPending(ctx context.Context, uow unitofwork.UnitOfWork) ([]*dto.ComplianceOverviewResponse, error) {
	therapists, err := uow.TherapistRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.TherapistStatusPending)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ComplianceOverviewResponse, 0, len(therapists))
	for _, therapist := range therapists {
		result = append(result, m.overview(therapist))
	}
	return result, nil
}

// Overview reports one therapist's standing against all accepted document
// rule-sets.
func (m *Manager) Overview(ctx context.Context, uow unitofwork.UnitOfWork, therapistId uuid.UUID) (*dto.ComplianceOverviewResponse, error) {
	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: therapistId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}

	return m.overview(therapist), nil
}

func (m *Manager) overview(therapist *entity.Therapist) *dto.ComplianceOverviewResponse {
	set := therapist.DocumentSet()
	primary, regional, legacy := policy.CompliancePathsSatisfied(set, therapist.CredentialTier)

	missing := make([]string, 0)
	for _, required := range policy.RequiredDocuments(therapist.CredentialTier) {
		if !set[required] {
			missing = append(missing, string(required))
		}
	}

	docs := make([]dto.DocumentResponse, 0, len(therapist.Documents))
	for _, d := range therapist.Documents {
		docs = append(docs, dto.DocumentResponse{
			Id:         d.Id,
			Type:       string(d.Type),
			Verified:   d.Verified,
			VerifiedAt: d.VerifiedAt,
		})
	}

	return &dto.ComplianceOverviewResponse{
		TherapistId:       therapist.Id,
		CredentialTier:    string(therapist.CredentialTier),
		Status:            string(therapist.Status),
		PrimarySatisfied:  primary,
		RegionalSatisfied: regional,
		LegacySatisfied:   legacy,
		Eligible:          primary || regional || legacy,
		MissingDocuments:  missing,
		Documents:         docs,
	}
}
