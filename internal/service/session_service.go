// FILE: internal/service/session_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/events"
	"teletherapy-be/pkg/gateway"
	pktNats "teletherapy-be/pkg/nats"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, actorId uuid.UUID, role string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context, actorId uuid.UUID, role string, req *dto.SessionListRequest) ([]*dto.SessionResponse, error)
	Update(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Confirm(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error)
	Start(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error)
	Complete(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.CompleteSessionRequest) (*dto.SessionResponse, error)
	Cancel(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.CancelSessionRequest) (*dto.CancelSessionResponse, error)
	NoShow(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error)
}

// Session durations outside this range are corrected silently instead of
// rejecting the booking.
const (
	minSessionMinutes = 15
	maxSessionMinutes = 120
)

func clampDuration(minutes int) int {
	if minutes < minSessionMinutes {
		return minSessionMinutes
	}
	if minutes > maxSessionMinutes {
		return maxSessionMinutes
	}
	return minutes
}

// countableStatuses are the statuses that consume quota in a billing period.
// Cancelled and no-show bookings return their slot.
var countableStatuses = []string{
	string(entity.SessionStatusScheduled),
	string(entity.SessionStatusConfirmed),
	string(entity.SessionStatusRescheduled),
	string(entity.SessionStatusInProgress),
	string(entity.SessionStatusCompleted),
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	policyService    IPolicyService
	chargeGateway    gateway.ChargeGateway
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	policyService IPolicyService,
	chargeGateway gateway.ChargeGateway,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		policyService:    policyService,
		chargeGateway:    chargeGateway,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *sessionService) Create(ctx context.Context, actorId uuid.UUID, role string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, apperror.InvalidInput("scheduled_date must be YYYY-MM-DD")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: req.TherapistId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}
	if therapist.Status != entity.TherapistStatusActive {
		return nil, apperror.Forbidden("therapist is not accepting sessions")
	}

	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: req.ClientId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NotFound("client")
	}
	if role == string(entity.UserRoleClient) && client.UserId != actorId {
		return nil, apperror.Forbidden("cannot book sessions for another client")
	}

	price, err := s.resolvePrice(ctx, therapist, entity.SessionKind(req.Kind), req.Price)
	if err != nil {
		return nil, err
	}

	// Quota standing before this booking, reported only when the client
	// books for themselves. Overage is advisory, never blocking.
	var (
		quota  *policy.Quota
		period *policy.Period
	)
	if role == string(entity.UserRoleClient) {
		quota, period, err = s.quotaStanding(ctx, uow, client.Id, time.Now())
		if err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		Id:                uuid.New(),
		TherapistId:       therapist.Id,
		ClientId:          client.Id,
		ScheduledDate:     scheduledDate,
		ScheduledTime:     req.ScheduledTime,
		DurationMinutes:   clampDuration(req.DurationMinutes),
		Kind:              entity.SessionKind(req.Kind),
		Status:            entity.SessionStatusScheduled,
		Price:             price,
		PaymentStatus:     entity.PaymentStatusPending,
		Notes:             req.Notes,
		LoggedByTherapist: role == string(entity.UserRoleTherapist),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	// First booking pins the therapist as the client's assigned clinician.
	if client.AssignedTherapistId == nil {
		client.AssignedTherapistId = &therapist.Id
		client.UpdatedAt = time.Now()
		if err := uow.ClientRepository().Update(ctx, client); err != nil {
			return nil, err
		}
	}

	if price > 0 {
		payment := &entity.Payment{
			Id:        uuid.New(),
			SessionId: session.Id,
			Amount:    price,
			Currency:  "USD",
			Status:    entity.PaymentStatusPending,
			Kind:      entity.PaymentKindSession,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(events.NewSessionBooked(session.Id, client.Id, therapist.Id, price))
	s.notifyBooking(ctx, client.UserId, therapist.UserId, session)
	if price > 0 {
		go s.chargeAsync(session.Id, client.UserId, price)
	}

	resp := &dto.CreateSessionResponse{
		Session: toSessionResponse(session),
	}
	if quota != nil {
		// Reflect this booking in the reported standing.
		after := policy.Remaining(quota.Total, quota.Used+1)
		resp.Quota = &dto.QuotaResponse{
			Total:     after.Total,
			Used:      after.Used,
			Remaining: after.Remaining,
			Unlimited: after.Unlimited,
		}
		if !after.Unlimited && quota.Remaining == 0 {
			resp.QuotaWarning = fmt.Sprintf(
				"this booking exceeds the %d sessions included in the current period (%s to %s); it will be billed individually",
				quota.Total,
				period.Start.Format("2006-01-02"),
				period.End.Format("2006-01-02"),
			)
		}
	}
	return resp, nil
}

func (s *sessionService) Show(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findAuthorized(ctx, uow, actorId, role, id)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) List(ctx context.Context, actorId uuid.UUID, role string, req *dto.SessionListRequest) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "scheduled_date", Desc: true},
	}

	switch role {
	case string(entity.UserRoleClient):
		client, err := uow.ClientRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NotFound("client profile")
		}
		specs = append(specs, specification.ClientOwnedBy{ClientID: client.Id})
	case string(entity.UserRoleTherapist):
		therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
		if err != nil {
			return nil, err
		}
		if therapist == nil {
			return nil, apperror.NotFound("therapist profile")
		}
		specs = append(specs, specification.TherapistOwnedBy{TherapistID: therapist.Id})
	}

	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.From != "" && req.To != "" {
		from, errF := time.Parse("2006-01-02", req.From)
		to, errT := time.Parse("2006-01-02", req.To)
		if errF != nil || errT != nil {
			return nil, apperror.InvalidInput("from/to must be YYYY-MM-DD")
		}
		specs = append(specs, specification.ScheduledBetween{From: from, To: to})
	}
	if req.Limit > 0 {
		offset := 0
		if req.Page > 1 {
			offset = (req.Page - 1) * req.Limit
		}
		specs = append(specs, specification.Pagination{Limit: req.Limit, Offset: offset})
	}

	sessions, err := uow.SessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp := toSessionResponse(session)
		result = append(result, &resp)
	}
	return result, nil
}

func (s *sessionService) Update(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findAuthorized(ctx, uow, actorId, role, id)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() || session.Status == entity.SessionStatusInProgress {
		return nil, apperror.Conflict(fmt.Sprintf("cannot modify a session in status %q", session.Status))
	}

	// Clients may reschedule and annotate; pricing, duration and the meeting
	// link stay under therapist or admin control.
	if role == string(entity.UserRoleClient) {
		if req.Price != nil || req.DurationMinutes != nil || req.MeetingLink != nil {
			return nil, apperror.Forbidden("clients may only reschedule a session or update its notes")
		}
	}

	rescheduled := false
	if req.ScheduledDate != nil {
		scheduledDate, err := time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			return nil, apperror.InvalidInput("scheduled_date must be YYYY-MM-DD")
		}
		if !scheduledDate.Equal(session.ScheduledDate) {
			session.ScheduledDate = scheduledDate
			rescheduled = true
		}
	}
	if req.ScheduledTime != nil && *req.ScheduledTime != session.ScheduledTime {
		session.ScheduledTime = *req.ScheduledTime
		rescheduled = true
	}
	if req.DurationMinutes != nil {
		session.DurationMinutes = clampDuration(*req.DurationMinutes)
	}
	if req.MeetingLink != nil {
		session.MeetingLink = req.MeetingLink
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if req.Price != nil {
		therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: session.TherapistId})
		if err != nil {
			return nil, err
		}
		if therapist == nil {
			return nil, apperror.NotFound("therapist")
		}
		caps, err := s.policyService.RateCaps(ctx)
		if err != nil {
			return nil, err
		}
		session.Price = caps.Clamp(*req.Price, therapist.CredentialTier)
	}

	if rescheduled {
		// A moved session drops any prior confirmation.
		session.Status = entity.SessionStatusRescheduled
	}
	session.UpdatedAt = time.Now()

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) Confirm(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.transition(ctx, actorId, role, id, entity.SessionStatusConfirmed,
		[]entity.SessionStatus{entity.SessionStatusScheduled, entity.SessionStatusRescheduled},
		nil)
}

func (s *sessionService) Start(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.transition(ctx, actorId, role, id, entity.SessionStatusInProgress,
		[]entity.SessionStatus{entity.SessionStatusScheduled, entity.SessionStatusConfirmed, entity.SessionStatusRescheduled},
		func(session *entity.Session) {
			now := time.Now()
			session.ActualStartTime = &now
			if session.MeetingLink == nil {
				link := fmt.Sprintf("https://meet.teletherapy.app/%s", session.Id)
				session.MeetingLink = &link
			}
		})
}

func (s *sessionService) Complete(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.CompleteSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findAuthorized(ctx, uow, actorId, role, id)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.SessionStatusCompleted {
		resp := toSessionResponse(session)
		return &resp, nil
	}
	if session.Status.IsTerminal() {
		return nil, apperror.Conflict(fmt.Sprintf("cannot complete a session in status %q", session.Status))
	}

	now := time.Now()
	session.Status = entity.SessionStatusCompleted
	session.ActualEndTime = &now
	if session.ActualStartTime == nil {
		// Therapist logged the session after the fact.
		session.ActualStartTime = &now
		session.LoggedByTherapist = true
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	session.PaymentStatus = entity.PaymentStatusCompleted
	session.UpdatedAt = now

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: session.TherapistId})
	if err != nil {
		return nil, err
	}
	if therapist != nil {
		therapist.TotalSessions++
		therapist.UpdatedAt = now
		if err := uow.TherapistRepository().Update(ctx, therapist); err != nil {
			return nil, err
		}
	}

	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.Filter("session_id", session.Id),
		specification.Filter("kind", string(entity.PaymentKindSession)),
	)
	if err != nil {
		return nil, err
	}
	if payment != nil {
		payment.Status = entity.PaymentStatusCompleted
		payment.UpdatedAt = now
		if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(events.NewSessionCompleted(session.Id, session.TherapistId))

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) Cancel(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID, req *dto.CancelSessionRequest) (*dto.CancelSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findAuthorized(ctx, uow, actorId, role, id)
	if err != nil {
		return nil, err
	}
	if session.Status.IsTerminal() {
		return nil, apperror.Conflict(fmt.Sprintf("cannot cancel a session in status %q", session.Status))
	}

	therapist, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: session.TherapistId})
	if err != nil {
		return nil, err
	}
	if therapist == nil {
		return nil, apperror.NotFound("therapist")
	}

	// Fee applies only when the therapist cancels and marks the cancellation
	// as logged by them. Client and admin cancellations are always free.
	fee := 0.0
	if req.LoggedByTherapist && role == string(entity.UserRoleTherapist) {
		fees, err := s.policyService.CancellationFees(ctx)
		if err != nil {
			return nil, err
		}
		fee = fees.Fee(therapist.CredentialTier)
	}

	now := time.Now()
	session.Status = entity.SessionStatusCancelled
	session.CancellationReason = &req.Reason
	session.CancelledAt = &now
	session.CancelledBy = &actorId
	session.UpdatedAt = now
	if fee > 0 {
		session.Price = fee
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	feeCharged := false
	if fee > 0 {
		existing, err := uow.PaymentRepository().FindOne(ctx,
			specification.Filter("session_id", session.Id),
			specification.Filter("kind", string(entity.PaymentKindCancellationFee)),
		)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			feePayment := &entity.Payment{
				Id:        uuid.New(),
				SessionId: session.Id,
				Amount:    fee,
				Currency:  "USD",
				Status:    entity.PaymentStatusPending,
				Kind:      entity.PaymentKindCancellationFee,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := uow.PaymentRepository().Create(ctx, feePayment); err != nil {
				if isUniqueViolation(err) {
					// A concurrent cancel inserted the fee first. Its insert
					// aborted this transaction, so report the conflict it won.
					return nil, apperror.Conflict("session was cancelled concurrently")
				}
				return nil, err
			}
			feeCharged = true
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(events.NewSessionCancelled(session.Id, actorId, fee))
	s.notifyCancellation(ctx, session, fee)

	return &dto.CancelSessionResponse{
		Session:         toSessionResponse(session),
		CancellationFee: fee,
		FeeCharged:      feeCharged,
	}, nil
}

func (s *sessionService) NoShow(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error) {
	return s.transition(ctx, actorId, role, id, entity.SessionStatusNoShow,
		[]entity.SessionStatus{entity.SessionStatusScheduled, entity.SessionStatusConfirmed, entity.SessionStatusRescheduled},
		nil)
}

// transition runs a guarded status change. Re-applying the target status is
// a no-op success; moving out of a terminal status is a conflict.
func (s *sessionService) transition(
	ctx context.Context,
	actorId uuid.UUID,
	role string,
	id uuid.UUID,
	target entity.SessionStatus,
	allowedFrom []entity.SessionStatus,
	mutate func(*entity.Session),
) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findAuthorized(ctx, uow, actorId, role, id)
	if err != nil {
		return nil, err
	}

	if session.Status == target {
		resp := toSessionResponse(session)
		return &resp, nil
	}

	allowed := false
	for _, from := range allowedFrom {
		if session.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperror.Conflict(fmt.Sprintf("cannot move session from %q to %q", session.Status, target))
	}

	session.Status = target
	if mutate != nil {
		mutate(session)
	}
	session.UpdatedAt = time.Now()

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

// findAuthorized loads the session and enforces role scoping: clients and
// therapists only reach their own sessions, admin reaches all.
func (s *sessionService) findAuthorized(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, role string, id uuid.UUID) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	switch role {
	case string(entity.UserRoleClient):
		client, err := uow.ClientRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
		if err != nil {
			return nil, err
		}
		if client == nil || client.Id != session.ClientId {
			return nil, apperror.Forbidden("session belongs to another client")
		}
	case string(entity.UserRoleTherapist):
		therapist, err := uow.TherapistRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
		if err != nil {
			return nil, err
		}
		if therapist == nil || therapist.Id != session.TherapistId {
			return nil, apperror.Forbidden("session belongs to another therapist")
		}
	}

	return session, nil
}

// resolvePrice applies the pricing rules: an explicit price wins, then the
// therapist's hourly rate, then the platform default. Initial sessions are
// free. The result is always clamped to the tier's rate cap.
func (s *sessionService) resolvePrice(ctx context.Context, therapist *entity.Therapist, kind entity.SessionKind, explicit *float64) (float64, error) {
	if kind == entity.SessionKindInitial {
		return 0, nil
	}

	price := entity.DefaultSessionPrice
	switch {
	case explicit != nil:
		price = *explicit
	case therapist.HourlyRate > 0:
		price = therapist.HourlyRate
	}

	caps, err := s.policyService.RateCaps(ctx)
	if err != nil {
		return 0, err
	}
	return caps.Clamp(price, therapist.CredentialTier), nil
}

// quotaStanding returns the client's quota in the current billing period, or
// nil when the client has no active limited-plan subscription.
func (s *sessionService) quotaStanding(ctx context.Context, uow unitofwork.UnitOfWork, clientId uuid.UUID, now time.Time) (*policy.Quota, *policy.Period, error) {
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("client_id", clientId),
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
	)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, nil
	}

	period := policy.CurrentPeriod(sub.StartDate, plan.BillingCycle, sub.NextBillingDate, now)

	used64, err := uow.SessionRepository().Count(ctx,
		specification.ClientOwnedBy{ClientID: clientId},
		specification.StatusIn{Statuses: countableStatuses},
		specification.ScheduledBetween{From: period.Start, To: period.End},
	)
	if err != nil {
		return nil, nil, err
	}

	quota := policy.Remaining(plan.SessionsPerPeriod, int(used64))
	return &quota, &period, nil
}

// chargeAsync pushes the charge to the payment provider off the request
// path. A gateway failure leaves the payment pending for retry; it never
// fails the booking.
func (s *sessionService) chargeAsync(sessionId, clientUserId uuid.UUID, amount float64) {
	if s.chargeGateway == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	clientUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: clientUserId})
	if err != nil || clientUser == nil {
		return
	}

	result, err := s.chargeGateway.CreateCharge(ctx, &gateway.ChargeRequest{
		OrderId:       sessionId.String(),
		Amount:        amount,
		ItemId:        sessionId.String(),
		ItemName:      "Therapy session",
		CustomerName:  clientUser.FullName,
		CustomerEmail: clientUser.Email,
	})
	if err != nil {
		s.logger.Warn("SessionService", "Gateway charge failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return
	}

	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.Filter("session_id", sessionId),
		specification.Filter("kind", string(entity.PaymentKindSession)),
	)
	if err != nil || payment == nil {
		return
	}
	payment.GatewayRef = &result.Reference
	payment.UpdatedAt = time.Now()
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		s.logger.Warn("SessionService", "Failed to save gateway reference", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
}

func (s *sessionService) publishEvent(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SessionService", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *sessionService) notifyBooking(ctx context.Context, clientUserId, therapistUserId uuid.UUID, session *entity.Session) {
	if s.publisherService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	clientUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: clientUserId})
	if err != nil || clientUser == nil {
		return
	}
	therapistUser, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: therapistUserId})
	therapistName := "your therapist"
	if therapistUser != nil {
		therapistName = therapistUser.FullName
	}

	msg := &dto.NotificationMessage{
		Kind:          dto.NotificationSessionBooked,
		RecipientMail: clientUser.Email,
		TherapistName: therapistName,
		Date:          session.ScheduledDate.Format("2006-01-02"),
		Time:          session.ScheduledTime,
	}
	if err := s.publisherService.PublishNotification(msg); err != nil {
		s.logger.Warn("SessionService", "Failed to queue booking notification", map[string]interface{}{"error": err.Error()})
	}
}

func (s *sessionService) notifyCancellation(ctx context.Context, session *entity.Session, fee float64) {
	if s.publisherService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: session.ClientId})
	if err != nil || client == nil {
		return
	}
	clientUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: client.UserId})
	if err != nil || clientUser == nil {
		return
	}

	msg := &dto.NotificationMessage{
		Kind:          dto.NotificationSessionCancelled,
		RecipientMail: clientUser.Email,
		Date:          session.ScheduledDate.Format("2006-01-02"),
		Time:          session.ScheduledTime,
		Fee:           fee,
	}
	if err := s.publisherService.PublishNotification(msg); err != nil {
		s.logger.Warn("SessionService", "Failed to queue cancellation notification", map[string]interface{}{"error": err.Error()})
	}
}

func toSessionResponse(session *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Id:                 session.Id,
		TherapistId:        session.TherapistId,
		ClientId:           session.ClientId,
		ScheduledDate:      session.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:      session.ScheduledTime,
		DurationMinutes:    session.DurationMinutes,
		Kind:               string(session.Kind),
		Status:             string(session.Status),
		Price:              session.Price,
		PaymentStatus:      string(session.PaymentStatus),
		MeetingLink:        session.MeetingLink,
		Notes:              session.Notes,
		ActualStartTime:    session.ActualStartTime,
		ActualEndTime:      session.ActualEndTime,
		CancellationReason: session.CancellationReason,
		CancelledAt:        session.CancelledAt,
		LoggedByTherapist:  session.LoggedByTherapist,
		CreatedAt:          session.CreatedAt,
	}
}
