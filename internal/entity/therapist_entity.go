// FILE: internal/entity/therapist_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type CredentialTier string
type TherapistStatus string
type DocumentType string

const (
	TierLicensedProfessional CredentialTier = "licensed_professional"
	TierSupervisedAssistant  CredentialTier = "supervised_assistant"

	TherapistStatusPending  TherapistStatus = "pending"
	TherapistStatusActive   TherapistStatus = "active"
	TherapistStatusPaused   TherapistStatus = "paused"
	TherapistStatusInactive TherapistStatus = "inactive"
)

// Compliance document types. The primary set is what onboarding collects
// today; the regional_* and legacy_* sets are older formats still honored
// for accounts created before the current requirements.
const (
	DocCertification        DocumentType = "certification"
	DocLicensure            DocumentType = "licensure"
	DocLiabilityInsurance   DocumentType = "liability_insurance"
	DocBackgroundCheck      DocumentType = "background_check"
	DocSupervisionAgreement DocumentType = "supervision_agreement"

	DocRegionalRegistration DocumentType = "regional_registration"
	DocRegionalInsurance    DocumentType = "regional_insurance"
	DocRegionalBackground   DocumentType = "regional_background"
	DocRegionalReference    DocumentType = "regional_reference"
	DocRegionalIdentity     DocumentType = "regional_identity"

	DocLegacyLicense   DocumentType = "legacy_license"
	DocLegacyInsurance DocumentType = "legacy_insurance"
)

type Therapist struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	CredentialTier CredentialTier
	HourlyRate     float64
	Status         TherapistStatus
	TotalSessions  int
	Bio            *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Documents []ComplianceDocument
}

// DocumentSet returns the verified-flag view of the therapist's documents,
// keyed by document type. Unverified and missing documents both read false.
func (t *Therapist) DocumentSet() DocumentSet {
	set := make(DocumentSet, len(t.Documents))
	for _, doc := range t.Documents {
		set[doc.Type] = set[doc.Type] || doc.Verified
	}
	return set
}

type ComplianceDocument struct {
	Id          uuid.UUID
	TherapistId uuid.UUID
	Type        DocumentType
	Verified    bool
	VerifiedAt  *time.Time
	VerifiedBy  *uuid.UUID
	Metadata    map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentSet maps a document type to its verified flag.
type DocumentSet map[DocumentType]bool

// Verified reports whether every listed document type is verified.
func (s DocumentSet) Verified(types ...DocumentType) bool {
	for _, t := range types {
		if !s[t] {
			return false
		}
	}
	return true
}

type Client struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	AssignedTherapistId *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
