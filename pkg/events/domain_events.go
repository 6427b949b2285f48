package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes published to the bus.
const (
	TypeSessionBooked          = "SESSION_BOOKED"
	TypeSessionCancelled       = "SESSION_CANCELLED"
	TypeSessionCompleted       = "SESSION_COMPLETED"
	TypeTherapistActivated     = "THERAPIST_ACTIVATED"
	TypeCredentialTierChanged  = "CREDENTIAL_TIER_CHANGED"
	TypePolicyConfigUpdated    = "POLICY_CONFIG_UPDATED"
	TypeSubscriptionCreated    = "SUBSCRIPTION_CREATED"
	TypeSubscriptionSuperseded = "SUBSCRIPTION_SUPERSEDED"
	TypeUserStatusChanged      = "USER_STATUS_CHANGED"
)

func NewSessionBooked(sessionId, clientId, therapistId uuid.UUID, price float64) Event {
	return BaseEvent{
		Type: TypeSessionBooked,
		Data: map[string]interface{}{
			"session_id":   sessionId.String(),
			"client_id":    clientId.String(),
			"therapist_id": therapistId.String(),
			"price":        price,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionCancelled(sessionId, cancelledBy uuid.UUID, fee float64) Event {
	return BaseEvent{
		Type: TypeSessionCancelled,
		Data: map[string]interface{}{
			"session_id":       sessionId.String(),
			"cancelled_by":     cancelledBy.String(),
			"cancellation_fee": fee,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionCompleted(sessionId, therapistId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSessionCompleted,
		Data: map[string]interface{}{
			"session_id":   sessionId.String(),
			"therapist_id": therapistId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewTherapistActivated(therapistId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeTherapistActivated,
		Data: map[string]interface{}{
			"therapist_id": therapistId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewCredentialTierChanged(therapistId uuid.UUID, previousTier, newTier string, rateClamped bool) Event {
	return BaseEvent{
		Type: TypeCredentialTierChanged,
		Data: map[string]interface{}{
			"therapist_id":  therapistId.String(),
			"previous_tier": previousTier,
			"new_tier":      newTier,
			"rate_clamped":  rateClamped,
		},
		OccurredAt: time.Now(),
	}
}

func NewPolicyConfigUpdated(updatedBy uuid.UUID, ratesClamped int) Event {
	return BaseEvent{
		Type: TypePolicyConfigUpdated,
		Data: map[string]interface{}{
			"updated_by":    updatedBy.String(),
			"rates_clamped": ratesClamped,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionCreated(subscriptionId, clientId, planId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSubscriptionCreated,
		Data: map[string]interface{}{
			"subscription_id": subscriptionId.String(),
			"client_id":       clientId.String(),
			"plan_id":         planId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionSuperseded(oldSubscriptionId, newSubscriptionId, clientId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSubscriptionSuperseded,
		Data: map[string]interface{}{
			"old_subscription_id": oldSubscriptionId.String(),
			"new_subscription_id": newSubscriptionId.String(),
			"client_id":           clientId.String(),
		},
		OccurredAt: time.Now(),
	}
}
