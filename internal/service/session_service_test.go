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

func newTestSessionService(store *fakeStore) ISessionService {
	return NewSessionService(&fakeFactory{store: store}, newTestPolicyService(store), nil, nil, nil, nopLogger{})
}

func bookingRequest(therapist *entity.Therapist, client *entity.Client, kind string) *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		TherapistId:     therapist.Id,
		ClientId:        client.Id,
		ScheduledDate:   time.Now().Format("2006-01-02"),
		ScheduledTime:   "10:00",
		DurationMinutes: 60,
		Kind:            kind,
	}
}

func TestSessionCreate_InitialSessionIsFree(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 120)
	svc := newTestSessionService(store)

	resp, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "initial"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Session.Price)
	assert.Equal(t, "scheduled", resp.Session.Status)
	assert.Empty(t, store.payments, "free sessions must not open a payment")
}

func TestSessionCreate_AssignsTherapistOnFirstBooking(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, first := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	_, second := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	svc := newTestSessionService(store)

	_, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(first, client, "follow_up"))
	require.NoError(t, err)
	require.NotNil(t, client.AssignedTherapistId)
	assert.Equal(t, first.Id, *client.AssignedTherapistId)

	// Later bookings with other therapists keep the original assignment.
	_, err = svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(second, client, "follow_up"))
	require.NoError(t, err)
	assert.Equal(t, first.Id, *client.AssignedTherapistId)
}

func TestSessionCreate_DurationClamped(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 120)
	svc := newTestSessionService(store)

	short := bookingRequest(therapist, client, "follow_up")
	short.DurationMinutes = 5
	resp, err := svc.Create(context.Background(), clientUser.Id, "client", short)
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Session.DurationMinutes)

	long := bookingRequest(therapist, client, "follow_up")
	long.DurationMinutes = 300
	resp, err = svc.Create(context.Background(), clientUser.Id, "client", long)
	require.NoError(t, err)
	assert.Equal(t, 120, resp.Session.DurationMinutes)
}

func TestSessionCreate_PriceResolution(t *testing.T) {
	explicit := 80.0
	overCap := 500.0

	cases := []struct {
		name     string
		tier     entity.CredentialTier
		rate     float64
		explicit *float64
		want     float64
	}{
		{"explicit price wins over hourly rate", entity.TierLicensedProfessional, 120, &explicit, 80},
		{"hourly rate when no explicit price", entity.TierLicensedProfessional, 120, nil, 120},
		{"platform default when therapist has no rate", entity.TierLicensedProfessional, 0, nil, entity.DefaultSessionPrice},
		{"explicit price clamped to licensed cap", entity.TierLicensedProfessional, 120, &overCap, entity.DefaultLicensedRateCap},
		{"hourly rate clamped to assistant cap", entity.TierSupervisedAssistant, 90, nil, entity.DefaultAssistantRateCap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			clientUser, client := seedClient(store)
			_, therapist := seedTherapist(store, tc.tier, entity.TherapistStatusActive, tc.rate)
			svc := newTestSessionService(store)

			req := bookingRequest(therapist, client, "follow_up")
			req.Price = tc.explicit

			resp, err := svc.Create(context.Background(), clientUser.Id, "client", req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Session.Price)

			require.Len(t, store.payments, 1)
			assert.Equal(t, tc.want, store.payments[0].Amount)
			assert.Equal(t, entity.PaymentKindSession, store.payments[0].Kind)
		})
	}
}

func TestSessionCreate_RejectsInactiveTherapist(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusPending, 100)
	svc := newTestSessionService(store)

	_, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "follow_up"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestSessionCreate_QuotaAdvisory(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)

	plan := &entity.SubscriptionPlan{
		Id:                uuid.New(),
		Name:              "Monthly Standard",
		Slug:              "monthly-standard",
		BillingCycle:      entity.BillingCycleMonthly,
		SessionsPerPeriod: 2,
		IsActive:          true,
	}
	store.plans = append(store.plans, plan)
	store.subscriptions = append(store.subscriptions, &entity.Subscription{
		Id:        uuid.New(),
		ClientId:  client.Id,
		PlanId:    plan.Id,
		Status:    entity.SubscriptionStatusActive,
		StartDate: time.Now().Add(-24 * time.Hour),
	})

	svc := newTestSessionService(store)

	t.Run("within quota reports remaining", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "follow_up"))
		require.NoError(t, err)
		require.NotNil(t, resp.Quota)
		assert.Equal(t, 1, resp.Quota.Used)
		assert.Equal(t, 1, resp.Quota.Remaining)
		assert.Empty(t, resp.QuotaWarning)
	})

	t.Run("booking past the quota still succeeds with a warning", func(t *testing.T) {
		// Second booking exhausts the allotment silently.
		_, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "follow_up"))
		require.NoError(t, err)

		resp, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "follow_up"))
		require.NoError(t, err)
		assert.Equal(t, "scheduled", resp.Session.Status)
		require.NotNil(t, resp.Quota)
		assert.Equal(t, 3, resp.Quota.Used)
		assert.Equal(t, 0, resp.Quota.Remaining)
		assert.NotEmpty(t, resp.QuotaWarning)
	})

	t.Run("only the booking client sees the snapshot", func(t *testing.T) {
		therapistUser := store.users[1]
		resp, err := svc.Create(context.Background(), therapistUser.Id, "therapist", bookingRequest(therapist, client, "follow_up"))
		require.NoError(t, err)
		assert.Nil(t, resp.Quota)
		assert.Empty(t, resp.QuotaWarning)
	})
}

func TestSessionCreate_NoQuotaWithoutSubscription(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	svc := newTestSessionService(store)

	resp, err := svc.Create(context.Background(), clientUser.Id, "client", bookingRequest(therapist, client, "follow_up"))
	require.NoError(t, err)
	assert.Nil(t, resp.Quota)
	assert.Empty(t, resp.QuotaWarning)
}

func seedSession(store *fakeStore, therapist *entity.Therapist, client *entity.Client, status entity.SessionStatus) *entity.Session {
	session := &entity.Session{
		Id:            uuid.New(),
		TherapistId:   therapist.Id,
		ClientId:      client.Id,
		ScheduledDate: time.Now(),
		ScheduledTime: "10:00",
		Kind:          entity.SessionKindFollowUp,
		Status:        status,
		Price:         100,
		PaymentStatus: entity.PaymentStatusPending,
	}
	store.sessions = append(store.sessions, session)
	return session
}

func TestSessionTransitions(t *testing.T) {
	store := &fakeStore{}
	clientUser, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	svc := newTestSessionService(store)

	t.Run("start sets actual start time", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)
		resp, err := svc.Start(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", resp.Status)
		assert.NotNil(t, resp.ActualStartTime)
	})

	t.Run("re-applying the current status is a no-op", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusInProgress)
		resp, err := svc.Start(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", resp.Status)
	})

	t.Run("second start keeps the meeting link and start time", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)
		first, err := svc.Start(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		require.NotNil(t, first.MeetingLink)

		second, err := svc.Start(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		assert.Equal(t, first.MeetingLink, second.MeetingLink)
		assert.Equal(t, first.ActualStartTime, second.ActualStartTime)
	})

	t.Run("no transition out of a terminal status", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusCompleted)
		_, err := svc.Confirm(context.Background(), clientUser.Id, "client", session.Id)
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("rescheduled can still be confirmed", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusRescheduled)
		resp, err := svc.Confirm(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("no-show from confirmed", func(t *testing.T) {
		session := seedSession(store, therapist, client, entity.SessionStatusConfirmed)
		resp, err := svc.NoShow(context.Background(), clientUser.Id, "client", session.Id)
		require.NoError(t, err)
		assert.Equal(t, "no_show", resp.Status)
	})
}

func TestSessionUpdate(t *testing.T) {
	t.Run("client reschedule drops confirmation", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusConfirmed)

		newDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
		resp, err := svc.Update(context.Background(), clientUser.Id, "client", session.Id, &dto.UpdateSessionRequest{
			ScheduledDate: &newDate,
		})
		require.NoError(t, err)
		assert.Equal(t, "rescheduled", resp.Status)
	})

	t.Run("client cannot touch pricing fields", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

		price := 40.0
		_, err := svc.Update(context.Background(), clientUser.Id, "client", session.Id, &dto.UpdateSessionRequest{
			Price: &price,
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		assert.Equal(t, 100.0, session.Price)
	})

	t.Run("therapist price update is clamped", func(t *testing.T) {
		store := &fakeStore{}
		_, client := seedClient(store)
		therapistUser, therapist := seedTherapist(store, entity.TierSupervisedAssistant, entity.TherapistStatusActive, 50)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

		price := 90.0
		resp, err := svc.Update(context.Background(), therapistUser.Id, "therapist", session.Id, &dto.UpdateSessionRequest{
			Price: &price,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultAssistantRateCap, resp.Price)
	})

	t.Run("in-progress session cannot be modified", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusInProgress)

		note := "late start"
		_, err := svc.Update(context.Background(), clientUser.Id, "client", session.Id, &dto.UpdateSessionRequest{
			Notes: &note,
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})
}

func TestSessionComplete(t *testing.T) {
	store := &fakeStore{}
	therapistUser, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	_, client := seedClient(store)
	svc := newTestSessionService(store)

	session := seedSession(store, therapist, client, entity.SessionStatusInProgress)
	store.payments = append(store.payments, &entity.Payment{
		Id:        uuid.New(),
		SessionId: session.Id,
		Amount:    100,
		Status:    entity.PaymentStatusPending,
		Kind:      entity.PaymentKindSession,
	})

	resp, err := svc.Complete(context.Background(), therapistUser.Id, "therapist", session.Id, &dto.CompleteSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.NotNil(t, resp.ActualEndTime)

	assert.Equal(t, 1, store.therapists[0].TotalSessions)
	assert.Equal(t, entity.PaymentStatusCompleted, store.payments[0].Status)

	// Completing an already completed session is idempotent and must not
	// double-count the therapist total.
	_, err = svc.Complete(context.Background(), therapistUser.Id, "therapist", session.Id, &dto.CompleteSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.therapists[0].TotalSessions)
}

func TestSessionCancel(t *testing.T) {
	reason := &dto.CancelSessionRequest{Reason: "schedule conflict"}
	therapistLogged := &dto.CancelSessionRequest{Reason: "schedule conflict", LoggedByTherapist: true}

	t.Run("therapist-logged cancel charges the tier fee once", func(t *testing.T) {
		store := &fakeStore{}
		_, client := seedClient(store)
		therapistUser, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

		resp, err := svc.Cancel(context.Background(), therapistUser.Id, "therapist", session.Id, therapistLogged)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Session.Status)
		assert.Equal(t, entity.DefaultCancellationFee, resp.CancellationFee)
		assert.True(t, resp.FeeCharged)

		// The session price is overwritten with the fee amount.
		assert.Equal(t, entity.DefaultCancellationFee, session.Price)

		require.Len(t, store.payments, 1)
		assert.Equal(t, entity.PaymentKindCancellationFee, store.payments[0].Kind)
		assert.Equal(t, entity.DefaultCancellationFee, store.payments[0].Amount)
	})

	t.Run("client cancel never charges a fee", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

		resp, err := svc.Cancel(context.Background(), clientUser.Id, "client", session.Id, therapistLogged)
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.CancellationFee)
		assert.False(t, resp.FeeCharged)
		assert.Equal(t, 100.0, session.Price)
		assert.Empty(t, store.payments)
	})

	t.Run("therapist cancel without the logged flag is free", func(t *testing.T) {
		store := &fakeStore{}
		_, client := seedClient(store)
		therapistUser, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

		resp, err := svc.Cancel(context.Background(), therapistUser.Id, "therapist", session.Id, reason)
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.CancellationFee)
		assert.False(t, resp.FeeCharged)
		assert.Empty(t, store.payments)
	})

	t.Run("duplicate fee row reported as not charged", func(t *testing.T) {
		store := &fakeStore{}
		_, client := seedClient(store)
		therapistUser, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)
		store.payments = append(store.payments, &entity.Payment{
			Id:        uuid.New(),
			SessionId: session.Id,
			Amount:    entity.DefaultCancellationFee,
			Status:    entity.PaymentStatusPending,
			Kind:      entity.PaymentKindCancellationFee,
		})

		resp, err := svc.Cancel(context.Background(), therapistUser.Id, "therapist", session.Id, therapistLogged)
		require.NoError(t, err)
		assert.False(t, resp.FeeCharged)
		assert.Len(t, store.payments, 1)
	})

	t.Run("losing a concurrent fee insert surfaces a conflict", func(t *testing.T) {
		store := &fakeStore{stalePaymentReads: true}
		_, client := seedClient(store)
		therapistUser, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusScheduled)
		store.payments = append(store.payments, &entity.Payment{
			Id:        uuid.New(),
			SessionId: session.Id,
			Amount:    entity.DefaultCancellationFee,
			Status:    entity.PaymentStatusPending,
			Kind:      entity.PaymentKindCancellationFee,
		})

		_, err := svc.Cancel(context.Background(), therapistUser.Id, "therapist", session.Id, therapistLogged)
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Len(t, store.payments, 1)
	})

	t.Run("cannot cancel a terminal session", func(t *testing.T) {
		store := &fakeStore{}
		clientUser, client := seedClient(store)
		_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
		svc := newTestSessionService(store)
		session := seedSession(store, therapist, client, entity.SessionStatusNoShow)

		_, err := svc.Cancel(context.Background(), clientUser.Id, "client", session.Id, reason)
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})
}

func TestSessionAccessScoping(t *testing.T) {
	store := &fakeStore{}
	_, client := seedClient(store)
	_, therapist := seedTherapist(store, entity.TierLicensedProfessional, entity.TherapistStatusActive, 100)
	svc := newTestSessionService(store)
	session := seedSession(store, therapist, client, entity.SessionStatusScheduled)

	stranger := &entity.User{Id: uuid.New(), Email: "other@example.com", Role: entity.UserRoleClient, Status: entity.UserStatusActive}
	store.users = append(store.users, stranger)
	store.clients = append(store.clients, &entity.Client{Id: uuid.New(), UserId: stranger.Id})

	_, err := svc.Show(context.Background(), stranger.Id, "client", session.Id)
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	// Admin reaches any session.
	resp, err := svc.Show(context.Background(), uuid.New(), "admin", session.Id)
	require.NoError(t, err)
	assert.Equal(t, session.Id, resp.Id)
}
