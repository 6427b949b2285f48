package service

import (
	"context"
	"testing"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/pkg/admin/compliance"
	"teletherapy-be/pkg/admin/credential"
	"teletherapy-be/pkg/admin/dashboard"
	"teletherapy-be/pkg/admin/pricing"
	"teletherapy-be/pkg/admin/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher counts admin event emissions.
type recordingPublisher struct {
	tierChanges   int
	policyUpdates int
	statusChanges int
}

func (p *recordingPublisher) PublishCredentialTierChanged(ctx context.Context, therapistId uuid.UUID, previousTier, newTier string, rateClamped bool) {
	p.tierChanges++
}

func (p *recordingPublisher) PublishPolicyConfigUpdated(ctx context.Context, updatedBy uuid.UUID, ratesClamped int) {
	p.policyUpdates++
}

func (p *recordingPublisher) PublishUserStatusChanged(ctx context.Context, userId uuid.UUID, previousStatus, newStatus, reason string) {
	p.statusChanges++
}

func newTestAdminService(store *fakeStore, pub *recordingPublisher) (IAdminService, IPolicyService) {
	log := nopLogger{}
	policyService := newTestPolicyService(store)
	svc := NewAdminService(
		&fakeFactory{store: store},
		policyService,
		log,
		user.NewManager(log, pub),
		credential.NewManager(log, pub),
		compliance.NewManager(log),
		pricing.NewManager(log, pub),
		dashboard.NewAggregator(log),
	)
	return svc, policyService
}

func TestAdminGetAllUsers_Filters(t *testing.T) {
	store := &fakeStore{}
	seedClient(store)
	seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	svc, _ := newTestAdminService(store, &recordingPublisher{})

	users, err := svc.GetAllUsers(context.Background(), &dto.AdminUserListRequest{Role: "therapist"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "therapist", users[0].Role)
}

func TestAdminUpdateUserStatus(t *testing.T) {
	store := &fakeStore{}
	clientUser, _ := seedClient(store)
	adminId := uuid.New()
	pub := &recordingPublisher{}
	svc, _ := newTestAdminService(store, pub)

	resp, err := svc.UpdateUserStatus(context.Background(), adminId, clientUser.Id, &dto.UpdateUserStatusRequest{
		Status: "blocked",
		Reason: "chargeback dispute",
	})
	require.NoError(t, err)
	assert.Equal(t, "blocked", resp.Status)
	assert.Equal(t, entity.UserStatusBlocked, clientUser.Status)
	assert.Equal(t, 1, pub.statusChanges)

	require.Len(t, store.audits, 1)
	assert.Equal(t, "user_status_changed", store.audits[0].ActionKind)
	require.NotNil(t, store.audits[0].ActorId)
	assert.Equal(t, adminId, *store.audits[0].ActorId)
}

func TestAdminUpdateUserStatus_UnknownUser(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestAdminService(store, &recordingPublisher{})

	_, err := svc.UpdateUserStatus(context.Background(), uuid.New(), uuid.New(), &dto.UpdateUserStatusRequest{Status: "blocked"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAdminUpdateCredentialTier(t *testing.T) {
	store := &fakeStore{}
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 120)
	pub := &recordingPublisher{}
	svc, _ := newTestAdminService(store, pub)

	resp, err := svc.UpdateCredentialTier(context.Background(), uuid.New(), therapist.Id, &dto.UpdateCredentialTierRequest{
		CredentialTier: "supervised_assistant",
	})
	require.NoError(t, err)

	assert.Equal(t, "licensed_professional", resp.PreviousTier)
	assert.Equal(t, "supervised_assistant", resp.NewTier)
	assert.Equal(t, 120.0, resp.PreviousRate)
	assert.Equal(t, entity.DefaultAssistantRateCap, resp.NewRate, "rate re-clamps to the new tier's cap")
	assert.True(t, resp.RateClamped)
	assert.Equal(t, 1, pub.tierChanges)
	assert.Equal(t, entity.TierSupervisedAssistant, therapist.CredentialTier)
}

func TestAdminBulkUpdateCredentialTier_PartialFailure(t *testing.T) {
	store := &fakeStore{}
	_, therapist := seedTherapist(store, entity.TierSupervisedAssistant, entity.TherapistStatusActive, 50)
	svc, _ := newTestAdminService(store, &recordingPublisher{})

	unknown := uuid.New()
	resp, err := svc.BulkUpdateCredentialTier(context.Background(), uuid.New(), &dto.BulkUpdateCredentialTierRequest{
		TherapistIds:   []uuid.UUID{therapist.Id, unknown},
		CredentialTier: "licensed_professional",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalRequested)
	assert.Equal(t, 1, resp.TotalUpdated)
	require.Len(t, resp.FailedTherapistIds, 1)
	assert.Equal(t, unknown, resp.FailedTherapistIds[0])
}

func TestAdminComplianceOverview(t *testing.T) {
	store := &fakeStore{}
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusPending, 0)
	store.documents = append(store.documents, &entity.ComplianceDocument{
		Id:          uuid.New(),
		TherapistId: therapist.Id,
		Type:        entity.DocLicensure,
		Verified:    true,
	})
	svc, _ := newTestAdminService(store, &recordingPublisher{})

	overview, err := svc.GetComplianceOverview(context.Background(), therapist.Id)
	require.NoError(t, err)
	assert.False(t, overview.Eligible)
	assert.False(t, overview.PrimarySatisfied)
	assert.ElementsMatch(t, []string{
		string(entity.DocCertification),
		string(entity.DocLiabilityInsurance),
		string(entity.DocBackgroundCheck),
	}, overview.MissingDocuments)
	require.Len(t, overview.Documents, 1)

	pending, err := svc.ListPendingTherapists(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, therapist.Id, pending[0].TherapistId)

	_, err = svc.GetComplianceOverview(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAdminUpdatePolicyConfig(t *testing.T) {
	store := &fakeStore{}
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 140)
	pub := &recordingPublisher{}
	svc, policyService := newTestAdminService(store, pub)

	// Warm the cache with the defaults before the change.
	caps, err := policyService.RateCaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultLicensedRateCap, caps.MaxRate(entity.TierLicensedProfessional))

	newCap := 100.0
	adminId := uuid.New()
	resp, err := svc.UpdatePolicyConfig(context.Background(), adminId, &dto.UpdatePolicyConfigRequest{
		LicensedRateCap: &newCap,
	})
	require.NoError(t, err)

	assert.Equal(t, newCap, resp.Config.LicensedRateCap)
	assert.Equal(t, 1, resp.TherapistsReviewed)
	assert.Equal(t, 1, resp.RatesClamped, "existing rate above the new cap is corrected")
	assert.Equal(t, newCap, therapist.HourlyRate)
	assert.Equal(t, 1, pub.policyUpdates)

	// The cache must serve the new cap immediately after the update.
	caps, err = policyService.RateCaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, newCap, caps.MaxRate(entity.TierLicensedProfessional))

	require.NotEmpty(t, store.audits)
	assert.Equal(t, "policy_config_updated", store.audits[0].ActionKind)
}

func TestAdminDashboardStats(t *testing.T) {
	store := &fakeStore{}
	_, client := seedClient(store)
	seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)

	plan := &entity.SubscriptionPlan{Id: uuid.New(), Slug: "monthly-standard", Price: 270, IsActive: true}
	store.plans = append(store.plans, plan)
	store.subscriptions = append(store.subscriptions, &entity.Subscription{
		Id:            uuid.New(),
		ClientId:      client.Id,
		PlanId:        plan.Id,
		Status:        entity.SubscriptionStatusActive,
		PaymentStatus: entity.PaymentStatusCompleted,
	})

	svc, _ := newTestAdminService(store, &recordingPublisher{})

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveTherapists)
	assert.Equal(t, 0, stats.PendingTherapists)
	assert.Equal(t, 1, stats.ActiveSubscribers)
	assert.Equal(t, 270.0, stats.TotalRevenue)
}
