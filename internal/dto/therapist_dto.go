// FILE: internal/dto/therapist_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type TherapistResponse struct {
	Id             uuid.UUID  `json:"id"`
	UserId         uuid.UUID  `json:"user_id"`
	CredentialTier string     `json:"credential_tier"`
	HourlyRate     float64    `json:"hourly_rate"`
	Status         string     `json:"status"`
	TotalSessions  int        `json:"total_sessions"`
	Bio            *string    `json:"bio,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	Documents []DocumentResponse `json:"documents,omitempty"`
}

type DocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

type UpdateRateRequest struct {
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

type UpdateRateResponse struct {
	TherapistId   uuid.UUID `json:"therapist_id"`
	RequestedRate float64   `json:"requested_rate"`
	EffectiveRate float64   `json:"effective_rate"`
	RateCap       float64   `json:"rate_cap"`
	Clamped       bool      `json:"clamped"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"required,max=2000"`
}

type SubmitDocumentRequest struct {
	Type     string                 `json:"type" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type VerifyDocumentRequest struct {
	Type     string `json:"type" validate:"required"`
	Verified bool   `json:"verified"`
}

// VerifyDocumentResponse reports whether the verification flipped the
// therapist to active.
type VerifyDocumentResponse struct {
	TherapistId uuid.UUID          `json:"therapist_id"`
	Document    DocumentResponse   `json:"document"`
	Status      string             `json:"status"`
	Activated   bool               `json:"activated"`
	Missing     []string           `json:"missing_documents,omitempty"`
}
