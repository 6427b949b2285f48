// FILE: internal/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Session rows are never deleted; terminal sessions stay as history.
type Session struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TherapistId     uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ScheduledDate   time.Time `gorm:"type:date;not null;index"`
	ScheduledTime   string    `gorm:"type:varchar(5);not null"`
	DurationMinutes int       `gorm:"not null;default:60"`
	Kind            string    `gorm:"type:varchar(50);not null"`
	Status          string    `gorm:"type:varchar(50);not null;index"`
	Price           float64   `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentStatus   string    `gorm:"type:varchar(50);not null;default:'pending'"`
	MeetingLink     *string   `gorm:"type:text"`
	Notes           *string   `gorm:"type:text"`

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	CancellationReason *string    `gorm:"type:text"`
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	LoggedByTherapist  bool       `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
