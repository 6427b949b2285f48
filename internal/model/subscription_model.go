package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Slug              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description       string    `gorm:"type:text"`
	Price             float64   `gorm:"type:decimal(10,2);not null"`
	BillingCycle      string    `gorm:"type:varchar(50);not null"`
	SessionsPerPeriod int       `gorm:"default:0"` // 0 or negative = unlimited
	IsActive          bool      `gorm:"default:true"`
	SortOrder         int       `gorm:"default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// Subscription history is retained indefinitely; only the status changes.
// The partial unique index enforces one active subscription per client.
type Subscription struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientId           uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_subscription_per_client,where:status = 'active'"`
	PlanId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status             string     `gorm:"type:varchar(50);not null;index"`
	PaymentStatus      string     `gorm:"type:varchar(50);not null;default:'pending'"`
	StartDate          time.Time  `gorm:"not null"`
	NextBillingDate    *time.Time
	AutoRenew          bool       `gorm:"default:true"`
	CancellationReason *string    `gorm:"type:text"`
	CancelledAt        *time.Time
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
