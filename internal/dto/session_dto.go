// FILE: internal/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	TherapistId     uuid.UUID `json:"therapist_id" validate:"required"`
	ClientId        uuid.UUID `json:"client_id" validate:"required"`
	ScheduledDate   string    `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string    `json:"scheduled_time" validate:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1"`
	Kind            string    `json:"kind" validate:"required,oneof=initial follow_up assessment maintenance consultation"`
	Price           *float64  `json:"price" validate:"omitempty,gt=0"`
	Notes           *string   `json:"notes"`
}

type UpdateSessionRequest struct {
	ScheduledDate   *string  `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime   *string  `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,min=1"`
	MeetingLink     *string  `json:"meeting_link" validate:"omitempty,url"`
	Notes           *string  `json:"notes"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
}

type CompleteSessionRequest struct {
	Notes *string `json:"notes"`
}

type CancelSessionRequest struct {
	Reason            string `json:"reason" validate:"required,min=5"`
	LoggedByTherapist bool   `json:"logged_by_therapist"`
}

type SessionResponse struct {
	Id                 uuid.UUID  `json:"id"`
	TherapistId        uuid.UUID  `json:"therapist_id"`
	ClientId           uuid.UUID  `json:"client_id"`
	ScheduledDate      string     `json:"scheduled_date"`
	ScheduledTime      string     `json:"scheduled_time"`
	DurationMinutes    int        `json:"duration_minutes"`
	Kind               string     `json:"kind"`
	Status             string     `json:"status"`
	Price              float64    `json:"price"`
	PaymentStatus      string     `json:"payment_status"`
	MeetingLink        *string    `json:"meeting_link,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	LoggedByTherapist  bool       `json:"logged_by_therapist"`
	CreatedAt          time.Time  `json:"created_at"`
}

// CreateSessionResponse carries the booked session plus the client's quota
// standing. QuotaWarning is advisory only; a booking past the quota still
// succeeds.
type CreateSessionResponse struct {
	Session      SessionResponse `json:"session"`
	Quota        *QuotaResponse  `json:"quota,omitempty"`
	QuotaWarning string          `json:"quota_warning,omitempty"`
}

type CancelSessionResponse struct {
	Session         SessionResponse `json:"session"`
	CancellationFee float64         `json:"cancellation_fee"`
	FeeCharged      bool            `json:"fee_charged"`
}

type SessionListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
}

type QuotaResponse struct {
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}
