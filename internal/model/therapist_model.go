// FILE: internal/model/therapist_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Therapist struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CredentialTier string    `gorm:"type:varchar(50);not null"`
	HourlyRate     float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Status         string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	TotalSessions  int       `gorm:"default:0"`
	Bio            *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	// Relations
	Documents []*ComplianceDocument `gorm:"foreignKey:TherapistId"`
}

func (Therapist) TableName() string {
	return "therapists"
}

type ComplianceDocument struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TherapistId uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_document_per_therapist,priority:1"`
	Type        string         `gorm:"type:varchar(100);not null;uniqueIndex:uniq_document_per_therapist,priority:2"`
	Verified    bool           `gorm:"default:false"`
	VerifiedAt  *time.Time
	VerifiedBy  *uuid.UUID     `gorm:"type:uuid"`
	Metadata    datatypes.JSONMap
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (ComplianceDocument) TableName() string {
	return "compliance_documents"
}

type Client struct {
	Id                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	AssignedTherapistId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time  `gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}
