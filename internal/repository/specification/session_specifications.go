package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session and subscription query specifications.

type ClientOwnedBy struct {
	ClientID uuid.UUID
}

func (s ClientOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_id = ?", s.ClientID)
}

type TherapistOwnedBy struct {
	TherapistID uuid.UUID
}

func (s TherapistOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("therapist_id = ?", s.TherapistID)
}

type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// ScheduledBetween matches sessions whose scheduled date falls in the
// half-open [From, To) window.
type ScheduledBetween struct {
	From time.Time
	To   time.Time
}

func (s ScheduledBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_date >= ? AND scheduled_date < ?", s.From, s.To)
}
