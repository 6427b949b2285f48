package policy

import (
	"testing"

	"teletherapy-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCancellationFee(t *testing.T) {
	fees := CancellationFees{
		entity.TierSupervisedAssistant:  15,
		entity.TierLicensedProfessional: 25,
	}

	assert.Equal(t, 15.0, fees.Fee(entity.TierSupervisedAssistant))
	assert.Equal(t, 25.0, fees.Fee(entity.TierLicensedProfessional))

	// Absent tier key falls back to the assistant fee.
	assert.Equal(t, 15.0, fees.Fee(entity.CredentialTier("unknown")))

	partial := CancellationFees{entity.TierSupervisedAssistant: 15}
	assert.Equal(t, 15.0, partial.Fee(entity.TierLicensedProfessional))

	// An empty table still answers with the built-in default.
	assert.Equal(t, entity.DefaultCancellationFee, CancellationFees{}.Fee(entity.TierSupervisedAssistant))
}
