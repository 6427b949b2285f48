// FILE: internal/dto/subscription_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscribeRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	AutoRenew *bool     `json:"auto_renew"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

type PlanResponse struct {
	Id                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	BillingCycle      string    `json:"billing_cycle"`
	SessionsPerPeriod int       `json:"sessions_per_period"`
	IsActive          bool      `json:"is_active"`
	SortOrder         int       `json:"sort_order"`
}

type SubscriptionResponse struct {
	Id                 uuid.UUID     `json:"id"`
	ClientId           uuid.UUID     `json:"client_id"`
	PlanId             uuid.UUID     `json:"plan_id"`
	Plan               *PlanResponse `json:"plan,omitempty"`
	Status             string        `json:"status"`
	PaymentStatus      string        `json:"payment_status"`
	StartDate          time.Time     `json:"start_date"`
	NextBillingDate    *time.Time    `json:"next_billing_date,omitempty"`
	AutoRenew          bool          `json:"auto_renew"`
	CancellationReason *string       `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

// SubscriptionStatusResponse is the client-facing standing view: the active
// subscription, the current billing window, and the remaining quota.
type SubscriptionStatusResponse struct {
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	PeriodStart  *time.Time            `json:"period_start,omitempty"`
	PeriodEnd    *time.Time            `json:"period_end,omitempty"`
	Quota        *QuotaResponse        `json:"quota,omitempty"`
}

type CreatePlanRequest struct {
	Name              string  `json:"name" validate:"required,min=3"`
	Slug              string  `json:"slug" validate:"required,min=3"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" validate:"gte=0"`
	BillingCycle      string  `json:"billing_cycle" validate:"required,oneof=every_4_weeks monthly pay_as_you_go one_time"`
	SessionsPerPeriod int     `json:"sessions_per_period"`
	SortOrder         int     `json:"sort_order"`
}

type UpdatePlanRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=3"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price" validate:"omitempty,gte=0"`
	SessionsPerPeriod *int     `json:"sessions_per_period"`
	IsActive          *bool    `json:"is_active"`
	SortOrder         *int     `json:"sort_order"`
}
