package service

import (
	"context"
	"testing"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscriptionService(store *fakeStore) ISubscriptionService {
	return NewSubscriptionService(&fakeFactory{store: store}, nil, nopLogger{})
}

func seedPlan(store *fakeStore, slug string, cycle entity.BillingCycle, sessions int) *entity.SubscriptionPlan {
	plan := &entity.SubscriptionPlan{
		Id:                uuid.New(),
		Name:              slug,
		Slug:              slug,
		Price:             180,
		BillingCycle:      cycle,
		SessionsPerPeriod: sessions,
		IsActive:          true,
	}
	store.plans = append(store.plans, plan)
	return plan
}

func TestSubscribe_CreatesActiveSubscription(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	plan := seedPlan(store, "monthly-standard", entity.BillingCycleMonthly, 6)
	svc := newTestSubscriptionService(store)

	resp, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: plan.Id})
	require.NoError(t, err)

	assert.Equal(t, client.Id, resp.ClientId)
	assert.Equal(t, plan.Id, resp.PlanId)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.AutoRenew)
	require.NotNil(t, resp.NextBillingDate)
	assert.True(t, resp.NextBillingDate.After(resp.StartDate))
}

func TestSubscribe_PayAsYouGoHasNoRenewal(t *testing.T) {
	store := &fakeStore{}
	clientUser, _ := seedClient(store)
	plan := seedPlan(store, "pay-as-you-go", entity.BillingCyclePayAsYouGo, 0)
	svc := newTestSubscriptionService(store)

	resp, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: plan.Id})
	require.NoError(t, err)
	assert.Nil(t, resp.NextBillingDate)
}

func TestSubscribe_SupersedesExistingActive(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	oldPlan := seedPlan(store, "weekly-wellness", entity.BillingCycleEvery4Weeks, 4)
	newPlan := seedPlan(store, "monthly-standard", entity.BillingCycleMonthly, 6)
	svc := newTestSubscriptionService(store)

	first, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: oldPlan.Id})
	require.NoError(t, err)

	second, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: newPlan.Id})
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, client.Id, second.ClientId)
	assert.Equal(t, "active", second.Status)

	active := 0
	for _, sub := range store.subscriptions {
		if sub.Status != entity.SubscriptionStatusActive {
			continue
		}
		active++
		assert.Equal(t, second.Id, sub.Id)
	}
	assert.Equal(t, 1, active, "exactly one active subscription per client")

	for _, sub := range store.subscriptions {
		if sub.Id == first.Id {
			assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
			require.NotNil(t, sub.CancellationReason)
			assert.Equal(t, entity.SupersededReason, *sub.CancellationReason)
			assert.NotNil(t, sub.CancelledAt)
		}
	}
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	store := &fakeStore{}
	clientUser, _ := seedClient(store)
	svc := newTestSubscriptionService(store)

	_, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCancelSubscription(t *testing.T) {
	t.Run("cancels the active subscription", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, _ := seedClient(store)
		plan := seedPlan(store, "monthly-standard", entity.BillingCycleMonthly, 6)
		svc := newTestSubscriptionService(store)

		_, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: plan.Id})
		require.NoError(t, err)

		resp, err := svc.Cancel(context.Background(), clientUser.Id, &dto.CancelSubscriptionRequest{Reason: "moving abroad"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.False(t, resp.AutoRenew)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "moving abroad", *resp.CancellationReason)
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, _ := seedClient(store)
		svc := newTestSubscriptionService(store)

		_, err := svc.Cancel(context.Background(), clientUser.Id, &dto.CancelSubscriptionRequest{Reason: "moving abroad"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestSubscriptionStatus(t *testing.T) {
	t.Run("reports period and quota", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		plan := seedPlan(store, "monthly-standard", entity.BillingCycleMonthly, 6)
		svc := newTestSubscriptionService(store)

		_, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: plan.Id})
		require.NoError(t, err)

		// Two countable sessions in the window, one cancelled that returns
		// its slot.
		seedSession(store, therapist, client, entity.SessionStatusScheduled)
		seedSession(store, therapist, client, entity.SessionStatusCompleted)
		seedSession(store, therapist, client, entity.SessionStatusCancelled)

		resp, err := svc.Status(context.Background(), clientUser.Id)
		require.NoError(t, err)
		require.NotNil(t, resp.Subscription)
		require.NotNil(t, resp.PeriodStart)
		require.NotNil(t, resp.PeriodEnd)

		now := time.Now()
		assert.False(t, resp.PeriodStart.After(now))
		assert.True(t, resp.PeriodEnd.After(now))

		require.NotNil(t, resp.Quota)
		assert.Equal(t, 6, resp.Quota.Total)
		assert.Equal(t, 2, resp.Quota.Used)
		assert.Equal(t, 4, resp.Quota.Remaining)
		assert.False(t, resp.Quota.Unlimited)
	})

	t.Run("unlimited plan reports sentinel", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, _ := seedClient(store)
		plan := seedPlan(store, "pay-as-you-go", entity.BillingCyclePayAsYouGo, 0)
		svc := newTestSubscriptionService(store)

		_, err := svc.Subscribe(context.Background(), clientUser.Id, &dto.SubscribeRequest{PlanId: plan.Id})
		require.NoError(t, err)

		resp, err := svc.Status(context.Background(), clientUser.Id)
		require.NoError(t, err)
		require.NotNil(t, resp.Quota)
		assert.True(t, resp.Quota.Unlimited)
		assert.Equal(t, entity.UnlimitedSessions, resp.Quota.Remaining)
	})

	t.Run("no active subscription yields an empty standing", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, _ := seedClient(store)
		svc := newTestSubscriptionService(store)

		resp, err := svc.Status(context.Background(), clientUser.Id)
		require.NoError(t, err)
		assert.Nil(t, resp.Subscription)
		assert.Nil(t, resp.Quota)
	})
}
