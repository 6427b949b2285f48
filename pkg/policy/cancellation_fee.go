package policy

import (
	"teletherapy-be/internal/entity"
)

// CancellationFees is an immutable snapshot of the flat cancellation fee
// per credential tier. The fee is intentionally flat, not a percentage of
// the session price.
type CancellationFees map[entity.CredentialTier]float64

// CancellationFeesFromConfig builds a snapshot from the current policy config.
func CancellationFeesFromConfig(cfg *entity.PolicyConfig) CancellationFees {
	fees := make(CancellationFees, len(cfg.CancellationFees))
	for tier, fee := range cfg.CancellationFees {
		fees[tier] = fee
	}
	return fees
}

// Fee returns the flat fee owed for a therapist-logged cancellation at the
// given tier. Absent tier keys fall back to the assistant fee.
func (f CancellationFees) Fee(tier entity.CredentialTier) float64 {
	if fee, ok := f[tier]; ok {
		return fee
	}
	if fee, ok := f[entity.TierSupervisedAssistant]; ok {
		return fee
	}
	return entity.DefaultCancellationFee
}
