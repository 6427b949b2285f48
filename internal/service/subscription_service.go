// FILE: internal/service/subscription_service.go
package service

import (
	"context"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/events"
	pktNats "teletherapy-be/pkg/nats"
	"teletherapy-be/pkg/policy"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)

	Subscribe(ctx context.Context, actorId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, actorId uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Status(ctx context.Context, actorId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type subscriptionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		resp := toPlanResponse(plan)
		result = append(result, &resp)
	}
	return result, nil
}

func (s *subscriptionService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.Filter("slug", req.Slug))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("plan slug already in use")
	}

	plan := &entity.SubscriptionPlan{
		Id:                uuid.New(),
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		Price:             req.Price,
		BillingCycle:      entity.BillingCycle(req.BillingCycle),
		SessionsPerPeriod: req.SessionsPerPeriod,
		IsActive:          true,
		SortOrder:         req.SortOrder,
	}

	if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

func (s *subscriptionService) UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("plan")
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.SessionsPerPeriod != nil {
		plan.SessionsPerPeriod = *req.SessionsPerPeriod
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}

	if err := uow.SubscriptionRepository().UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

// Subscribe activates the chosen plan for the client. If an active
// subscription already exists it is superseded in the same transaction; the
// partial unique index on (client_id) WHERE status='active' closes the race
// with a concurrent subscribe, which is retried once.
func (s *subscriptionService) Subscribe(ctx context.Context, actorId uuid.UUID, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NotFound("client profile")
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, apperror.NotFound("plan")
	}

	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	var created *entity.Subscription
	var supersededId *uuid.UUID
	for attempt := 0; attempt < 2; attempt++ {
		created, supersededId, err = s.subscribeOnce(ctx, client.Id, plan, autoRenew)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) || attempt == 1 {
			return nil, err
		}
		// Lost the race; the fresh attempt supersedes the winner's row.
	}

	s.publishSubscriptionEvents(created, supersededId, client.Id, plan.Id)

	resp := toSubscriptionResponse(created, plan)
	return &resp, nil
}

func (s *subscriptionService) subscribeOnce(ctx context.Context, clientId uuid.UUID, plan *entity.SubscriptionPlan, autoRenew bool) (*entity.Subscription, *uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	var supersededId *uuid.UUID

	current, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("client_id", clientId),
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
	)
	if err != nil {
		return nil, nil, err
	}
	if current != nil {
		reason := entity.SupersededReason
		current.Status = entity.SubscriptionStatusCancelled
		current.CancellationReason = &reason
		current.CancelledAt = &now
		current.UpdatedAt = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, current); err != nil {
			return nil, nil, err
		}
		supersededId = &current.Id
	}

	sub := &entity.Subscription{
		Id:              uuid.New(),
		ClientId:        clientId,
		PlanId:          plan.Id,
		Status:          entity.SubscriptionStatusActive,
		PaymentStatus:   entity.PaymentStatusPending,
		StartDate:       now,
		NextBillingDate: policy.NextBillingDate(now, plan.BillingCycle),
		AutoRenew:       autoRenew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return sub, supersededId, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, actorId uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NotFound("client profile")
	}

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("client_id", client.Id),
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperror.NotFound("active subscription")
	}

	now := time.Now()
	sub.Status = entity.SubscriptionStatusCancelled
	sub.CancellationReason = &req.Reason
	sub.CancelledAt = &now
	sub.AutoRenew = false
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	plan, _ := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})

	resp := toSubscriptionResponse(sub, plan)
	return &resp, nil
}

func (s *subscriptionService) Status(ctx context.Context, actorId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	client, err := uow.ClientRepository().FindOne(ctx, specification.UserOwnedBy{UserID: actorId})
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NotFound("client profile")
	}

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.Filter("client_id", client.Id),
		specification.ByStatus{Status: string(entity.SubscriptionStatusActive)},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.SubscriptionStatusResponse{}, nil
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	resp := &dto.SubscriptionStatusResponse{}
	subResp := toSubscriptionResponse(sub, plan)
	resp.Subscription = &subResp

	if plan != nil {
		period := policy.CurrentPeriod(sub.StartDate, plan.BillingCycle, sub.NextBillingDate, time.Now())
		resp.PeriodStart = &period.Start
		resp.PeriodEnd = &period.End

		used64, err := uow.SessionRepository().Count(ctx,
			specification.ClientOwnedBy{ClientID: client.Id},
			specification.StatusIn{Statuses: countableStatuses},
			specification.ScheduledBetween{From: period.Start, To: period.End},
		)
		if err != nil {
			return nil, err
		}
		quota := policy.Remaining(plan.SessionsPerPeriod, int(used64))
		resp.Quota = &dto.QuotaResponse{
			Total:     quota.Total,
			Used:      quota.Used,
			Remaining: quota.Remaining,
			Unlimited: quota.Unlimited,
		}
	}

	return resp, nil
}

func (s *subscriptionService) publishSubscriptionEvents(sub *entity.Subscription, supersededId *uuid.UUID, clientId, planId uuid.UUID) {
	if s.eventPublisher == nil || sub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.eventPublisher.Publish(ctx, events.NewSubscriptionCreated(sub.Id, clientId, planId)); err != nil {
		s.logger.Warn("SubscriptionService", "Failed to publish SUBSCRIPTION_CREATED", map[string]interface{}{"error": err.Error()})
	}
	if supersededId != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSubscriptionSuperseded(*supersededId, sub.Id, clientId)); err != nil {
			s.logger.Warn("SubscriptionService", "Failed to publish SUBSCRIPTION_SUPERSEDED", map[string]interface{}{"error": err.Error()})
		}
	}
}

func toPlanResponse(plan *entity.SubscriptionPlan) dto.PlanResponse {
	return dto.PlanResponse{
		Id:                plan.Id,
		Name:              plan.Name,
		Slug:              plan.Slug,
		Description:       plan.Description,
		Price:             plan.Price,
		BillingCycle:      string(plan.BillingCycle),
		SessionsPerPeriod: plan.SessionsPerPeriod,
		IsActive:          plan.IsActive,
		SortOrder:         plan.SortOrder,
	}
}

func toSubscriptionResponse(sub *entity.Subscription, plan *entity.SubscriptionPlan) dto.SubscriptionResponse {
	resp := dto.SubscriptionResponse{
		Id:                 sub.Id,
		ClientId:           sub.ClientId,
		PlanId:             sub.PlanId,
		Status:             string(sub.Status),
		PaymentStatus:      string(sub.PaymentStatus),
		StartDate:          sub.StartDate,
		NextBillingDate:    sub.NextBillingDate,
		AutoRenew:          sub.AutoRenew,
		CancellationReason: sub.CancellationReason,
		CancelledAt:        sub.CancelledAt,
		CreatedAt:          sub.CreatedAt,
	}
	if plan != nil {
		planResp := toPlanResponse(plan)
		resp.Plan = &planResp
	}
	return resp
}
