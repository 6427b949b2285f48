// FILE: internal/entity/policy_config_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Default policy values, applied when no PolicyConfig row exists yet.
const (
	DefaultLicensedRateCap  = 150.0
	DefaultAssistantRateCap = 55.0
	DefaultCancellationFee  = 15.0
	DefaultSessionPrice     = 50.0
)

// PolicyConfig holds the administratively mutable pricing knobs: per-tier
// rate caps and cancellation fees. A single current row is kept; every
// update is audit-logged.
type PolicyConfig struct {
	Id               uuid.UUID
	LicensedRateCap  float64
	AssistantRateCap float64
	CancellationFees map[CredentialTier]float64
	UpdatedBy        *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultPolicyConfig returns the built-in values used until an admin
// writes a config row.
func DefaultPolicyConfig() *PolicyConfig {
	return &PolicyConfig{
		LicensedRateCap:  DefaultLicensedRateCap,
		AssistantRateCap: DefaultAssistantRateCap,
		CancellationFees: map[CredentialTier]float64{
			TierSupervisedAssistant:  DefaultCancellationFee,
			TierLicensedProfessional: DefaultCancellationFee,
		},
	}
}
