package pricing

import (
	"context"
	"time"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	adminEvents "teletherapy-be/pkg/admin/events"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

// Manager handles pricing policy admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewManager creates a new pricing manager
func NewManager(logger logger.ILogger, publisher adminEvents.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// Get returns the current policy config, falling back to defaults when no
// row has been written yet.
func (m *Manager) Get(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.PolicyConfigResponse, error) {
	cfg, err := uow.PolicyConfigRepository().FindCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = entity.DefaultPolicyConfig()
	}
	resp := toConfigResponse(cfg)
	return &resp, nil
}

// Update writes a new policy config and re-clamps every active therapist
// whose rate now exceeds the cap for their tier. Lowering a cap corrects
// stored rates; raising one never touches them.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, req dto.UpdatePolicyConfigRequest) (*dto.UpdatePolicyConfigResponse, error) {
	current, err := uow.PolicyConfigRepository().FindCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = entity.DefaultPolicyConfig()
		current.Id = uuid.New()
	}

	if req.LicensedRateCap != nil {
		current.LicensedRateCap = *req.LicensedRateCap
	}
	if req.AssistantRateCap != nil {
		current.AssistantRateCap = *req.AssistantRateCap
	}
	if len(req.CancellationFees) > 0 {
		if current.CancellationFees == nil {
			current.CancellationFees = make(map[entity.CredentialTier]float64, len(req.CancellationFees))
		}
		for tier, fee := range req.CancellationFees {
			current.CancellationFees[entity.CredentialTier(tier)] = fee
		}
	}
	current.UpdatedBy = &adminId
	current.UpdatedAt = time.Now()

	if err := uow.PolicyConfigRepository().Save(ctx, current); err != nil {
		return nil, err
	}

	caps := policy.RateCapsFromConfig(current)

	therapists, err := uow.TherapistRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.TherapistStatusActive)},
	)
	if err != nil {
		return nil, err
	}

	clamped := 0
	for _, therapist := range therapists {
		effective := caps.Clamp(therapist.HourlyRate, therapist.CredentialTier)
		if effective == therapist.HourlyRate {
			continue
		}
		therapist.HourlyRate = effective
		therapist.UpdatedAt = time.Now()
		if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
			return nil, err
		}
		clamped++
	}

	m.audit(ctx, uow, adminId, current, clamped)
	m.publisher.PublishPolicyConfigUpdated(ctx, adminId, clamped)

	return &dto.UpdatePolicyConfigResponse{
		Config:             toConfigResponse(current),
		TherapistsReviewed: len(therapists),
		RatesClamped:       clamped,
	}, nil
}

// audit records the config change. Failure to write the log never fails
// the update.
func (m *Manager) audit(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, cfg *entity.PolicyConfig, clamped int) {
	log := &entity.AuditLog{
		Id:         uuid.New(),
		ActorId:    &adminId,
		ActionKind: "policy_config_updated",
		TargetId:   &cfg.Id,
		Details: map[string]interface{}{
			"licensed_rate_cap":  cfg.LicensedRateCap,
			"assistant_rate_cap": cfg.AssistantRateCap,
			"rates_clamped":      clamped,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.AuditRepository().Create(ctx, log); err != nil {
		m.logger.Warn("PricingManager", "Failed to write audit log", map[string]interface{}{"error": err.Error()})
	}
}

func toConfigResponse(cfg *entity.PolicyConfig) dto.PolicyConfigResponse {
	fees := make(map[string]float64, len(cfg.CancellationFees))
	for tier, fee := range cfg.CancellationFees {
		fees[string(tier)] = fee
	}
	return dto.PolicyConfigResponse{
		LicensedRateCap:  cfg.LicensedRateCap,
		AssistantRateCap: cfg.AssistantRateCap,
		CancellationFees: fees,
		UpdatedBy:        cfg.UpdatedBy,
		UpdatedAt:        cfg.UpdatedAt,
	}
}
