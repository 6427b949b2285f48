// FILE: internal/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment keeps one charge record per (session, kind); the composite unique
// index is what makes fee creation idempotent under concurrent cancels.
type Payment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_payment_per_session_kind,priority:1"`
	Amount     float64   `gorm:"type:decimal(10,2);not null"`
	Currency   string    `gorm:"type:varchar(10);not null;default:'USD'"`
	Status     string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	Kind       string    `gorm:"type:varchar(50);not null;uniqueIndex:uniq_payment_per_session_kind,priority:2"`
	GatewayRef *string   `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
