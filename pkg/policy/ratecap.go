// Package policy contains the pure pricing and scheduling rules: rate caps,
// cancellation fees, billing-period math, session quotas and compliance
// activation. Nothing here touches storage or the clock; callers supply a
// config snapshot and "now" so every rule stays unit-testable.
package policy

import (
	"teletherapy-be/internal/entity"
)

// RateCaps is an immutable snapshot of the per-tier hourly rate caps.
type RateCaps struct {
	Licensed  float64
	Assistant float64
}

// RateCapsFromConfig builds a snapshot from the current policy config.
func RateCapsFromConfig(cfg *entity.PolicyConfig) RateCaps {
	return RateCaps{
		Licensed:  cfg.LicensedRateCap,
		Assistant: cfg.AssistantRateCap,
	}
}

// MaxRate returns the cap for a credential tier. Unrecognized tiers fall
// back to the licensed cap; the fail-safe direction is deliberate and
// matches the historical behavior.
func (c RateCaps) MaxRate(tier entity.CredentialTier) float64 {
	switch tier {
	case entity.TierSupervisedAssistant:
		return c.Assistant
	case entity.TierLicensedProfessional:
		return c.Licensed
	default:
		return c.Licensed
	}
}

// Clamp reduces a requested rate to the tier cap. Overage is corrected,
// never rejected.
func (c RateCaps) Clamp(requested float64, tier entity.CredentialTier) float64 {
	if max := c.MaxRate(tier); requested > max {
		return max
	}
	return requested
}
