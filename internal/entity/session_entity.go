// FILE: internal/entity/session_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string
type SessionKind string

const (
	SessionStatusScheduled   SessionStatus = "scheduled"
	SessionStatusConfirmed   SessionStatus = "confirmed"
	SessionStatusInProgress  SessionStatus = "in_progress"
	SessionStatusCompleted   SessionStatus = "completed"
	SessionStatusCancelled   SessionStatus = "cancelled"
	SessionStatusNoShow      SessionStatus = "no_show"
	SessionStatusRescheduled SessionStatus = "rescheduled"

	SessionKindInitial      SessionKind = "initial"
	SessionKindFollowUp     SessionKind = "follow_up"
	SessionKindAssessment   SessionKind = "assessment"
	SessionKindMaintenance  SessionKind = "maintenance"
	SessionKindConsultation SessionKind = "consultation"
)

// Duration bounds for a single session, minutes.
const (
	SessionMinDuration = 15
	SessionMaxDuration = 120
)

// IsTerminal reports whether no further transition is permitted from the status.
// Rescheduled is not terminal: it re-enters scheduled.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled || s == SessionStatusNoShow
}

type Session struct {
	Id              uuid.UUID
	TherapistId     uuid.UUID
	ClientId        uuid.UUID
	ScheduledDate   time.Time // date component only
	ScheduledTime   string    // wall clock "HH:MM"
	DurationMinutes int
	Kind            SessionKind
	Status          SessionStatus
	Price           float64
	PaymentStatus   PaymentStatus
	MeetingLink     *string
	Notes           *string

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID
	LoggedByTherapist  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
