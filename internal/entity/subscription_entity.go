// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingCycle string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusInactive  SubscriptionStatus = "inactive"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"

	BillingCycleEvery4Weeks BillingCycle = "every_4_weeks"
	BillingCycleMonthly     BillingCycle = "monthly"
	BillingCyclePayAsYouGo  BillingCycle = "pay_as_you_go"
	BillingCycleOneTime     BillingCycle = "one_time"
)

// SupersededReason marks a subscription cancelled because the client
// subscribed to a new plan while this one was still active.
const SupersededReason = "superseded"

// UnlimitedSessions is the sentinel returned for plans without a per-period cap.
const UnlimitedSessions = -1

type SubscriptionPlan struct {
	Id                uuid.UUID
	Name              string
	Slug              string
	Description       string
	Price             float64
	BillingCycle      BillingCycle
	SessionsPerPeriod int // 0 or negative = unlimited
	IsActive          bool
	SortOrder         int
}

// Unlimited reports whether the plan carries no per-period session cap.
func (p *SubscriptionPlan) Unlimited() bool {
	return p.SessionsPerPeriod <= 0
}

type Subscription struct {
	Id                 uuid.UUID
	ClientId           uuid.UUID
	PlanId             uuid.UUID
	Status             SubscriptionStatus
	PaymentStatus      PaymentStatus
	StartDate          time.Time
	NextBillingDate    *time.Time
	AutoRenew          bool
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
