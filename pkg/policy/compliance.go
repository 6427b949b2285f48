package policy

import (
	"teletherapy-be/internal/entity"
)

// The three document rule-sets honored for automatic activation. A
// therapist activates when ANY one set is fully verified. The regional and
// legacy sets exist because older accounts uploaded under earlier formats;
// they are explicit alternatives here rather than optional-chaining over a
// ragged document shape.

var licensedRequiredDocs = []entity.DocumentType{
	entity.DocCertification,
	entity.DocLicensure,
	entity.DocLiabilityInsurance,
	entity.DocBackgroundCheck,
}

var assistantRequiredDocs = []entity.DocumentType{
	entity.DocLicensure,
	entity.DocLiabilityInsurance,
	entity.DocBackgroundCheck,
	entity.DocSupervisionAgreement,
}

var regionalDocs = []entity.DocumentType{
	entity.DocRegionalRegistration,
	entity.DocRegionalInsurance,
	entity.DocRegionalBackground,
	entity.DocRegionalReference,
	entity.DocRegionalIdentity,
}

var legacyDocs = []entity.DocumentType{
	entity.DocLegacyLicense,
	entity.DocLegacyInsurance,
}

// RequiredDocuments returns the primary-path document list for a tier.
// Unknown tiers get the licensed list.
func RequiredDocuments(tier entity.CredentialTier) []entity.DocumentType {
	if tier == entity.TierSupervisedAssistant {
		return assistantRequiredDocs
	}
	return licensedRequiredDocs
}

// CompliancePathsSatisfied reports, per path, whether the document set
// fully satisfies it: primary (tier-specific), regional (legacy A) and
// legacy (legacy B).
func CompliancePathsSatisfied(docs entity.DocumentSet, tier entity.CredentialTier) (primary, regional, legacy bool) {
	primary = docs.Verified(RequiredDocuments(tier)...)
	regional = docs.Verified(regionalDocs...)
	legacy = docs.Verified(legacyDocs...)
	return
}

// ShouldActivate decides whether a therapist account flips to active:
// the account must currently be pending and at least one compliance path
// must be fully verified. Paused and inactive accounts never auto-activate;
// those require an explicit admin status change.
func ShouldActivate(docs entity.DocumentSet, tier entity.CredentialTier, current entity.TherapistStatus) bool {
	if current != entity.TherapistStatusPending {
		return false
	}
	primary, regional, legacy := CompliancePathsSatisfied(docs, tier)
	return primary || regional || legacy
}
