package events

import (
	"context"
	"time"

	"teletherapy-be/internal/pkg/logger"
	pkgEvents "teletherapy-be/pkg/events"
	pktNats "teletherapy-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishCredentialTierChanged(ctx context.Context, therapistId uuid.UUID, previousTier, newTier string, rateClamped bool)
	PublishPolicyConfigUpdated(ctx context.Context, updatedBy uuid.UUID, ratesClamped int)
	PublishUserStatusChanged(ctx context.Context, userId uuid.UUID, previousStatus, newStatus, reason string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, evt pkgEvents.Event) {
	if p.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.publisher.Publish(pubCtx, evt); err != nil {
		p.logger.Warn("AdminEvents", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (p *NatsPublisher) PublishCredentialTierChanged(ctx context.Context, therapistId uuid.UUID, previousTier, newTier string, rateClamped bool) {
	p.publish(ctx, pkgEvents.NewCredentialTierChanged(therapistId, previousTier, newTier, rateClamped))
}

func (p *NatsPublisher) PublishPolicyConfigUpdated(ctx context.Context, updatedBy uuid.UUID, ratesClamped int) {
	p.publish(ctx, pkgEvents.NewPolicyConfigUpdated(updatedBy, ratesClamped))
}

func (p *NatsPublisher) PublishUserStatusChanged(ctx context.Context, userId uuid.UUID, previousStatus, newStatus, reason string) {
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.TypeUserStatusChanged,
		Data: map[string]interface{}{
			"user_id":         userId.String(),
			"previous_status": previousStatus,
			"new_status":      newStatus,
			"reason":          reason,
		},
		OccurredAt: time.Now(),
	})
}
