// FILE: internal/service/admin_service.go
package service

import (
	"context"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/admin/compliance"
	"teletherapy-be/pkg/admin/credential"
	"teletherapy-be/pkg/admin/dashboard"
	"teletherapy-be/pkg/admin/pricing"
	"teletherapy-be/pkg/admin/user"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)

	// User management
	GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) ([]*dto.UserListResponse, error)
	GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateUserStatus(ctx context.Context, actorId, userId uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserProfileResponse, error)

	// Credential management
	UpdateCredentialTier(ctx context.Context, actorId, therapistId uuid.UUID, req *dto.UpdateCredentialTierRequest) (*dto.UpdateCredentialTierResponse, error)
	BulkUpdateCredentialTier(ctx context.Context, actorId uuid.UUID, req *dto.BulkUpdateCredentialTierRequest) (*dto.BulkUpdateCredentialTierResponse, error)

	// Compliance review
	ListPendingTherapists(ctx context.Context) ([]*dto.ComplianceOverviewResponse, error)
	GetComplianceOverview(ctx context.Context, therapistId uuid.UUID) (*dto.ComplianceOverviewResponse, error)

	// Policy configuration
	GetPolicyConfig(ctx context.Context) (*dto.PolicyConfigResponse, error)
	UpdatePolicyConfig(ctx context.Context, actorId uuid.UUID, req *dto.UpdatePolicyConfigRequest) (*dto.UpdatePolicyConfigResponse, error)

	// Audit trail
	GetAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]*dto.AuditLogResponse, error)

	// System logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	policyService IPolicyService
	logger        logger.ILogger

	// Domain components
	userManager         *user.Manager
	credentialManager   *credential.Manager
	complianceManager   *compliance.Manager
	pricingManager      *pricing.Manager
	dashboardAggregator *dashboard.Aggregator
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	policyService IPolicyService,
	log logger.ILogger,
	userManager *user.Manager,
	credentialManager *credential.Manager,
	complianceManager *compliance.Manager,
	pricingManager *pricing.Manager,
	dashboardAggregator *dashboard.Aggregator,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		policyService:       policyService,
		logger:              log,
		userManager:         userManager,
		credentialManager:   credentialManager,
		complianceManager:   complianceManager,
		pricingManager:      pricingManager,
		dashboardAggregator: dashboardAggregator,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetStats(ctx, uow)
}

func (s *adminService) GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) ([]*dto.UserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := s.userManager.FindAll(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserListResponse, 0, len(users))
	for _, u := range users {
		result = append(result, &dto.UserListResponse{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt,
		})
	}
	return result, nil
}

func (s *adminService) GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	u, err := s.userManager.FindOne(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return &dto.UserProfileResponse{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, actorId, userId uuid.UUID, req *dto.UpdateUserStatusRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	u, err := s.userManager.UpdateStatus(ctx, uow, actorId, userId, req)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *adminService) UpdateCredentialTier(ctx context.Context, actorId, therapistId uuid.UUID, req *dto.UpdateCredentialTierRequest) (*dto.UpdateCredentialTierResponse, error) {
	caps, err := s.policyService.RateCaps(ctx)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	resp, err := s.credentialManager.UpdateTier(ctx, uow, caps, therapistId, *req)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("AdminService", "Credential tier updated", map[string]interface{}{
		"actorId":     actorId.String(),
		"therapistId": therapistId.String(),
		"newTier":     resp.NewTier,
	})
	return resp, nil
}

func (s *adminService) BulkUpdateCredentialTier(ctx context.Context, actorId uuid.UUID, req *dto.BulkUpdateCredentialTierRequest) (*dto.BulkUpdateCredentialTierResponse, error) {
	caps, err := s.policyService.RateCaps(ctx)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	resp, err := s.credentialManager.BulkUpdateTier(ctx, uow, caps, *req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AdminService", "Bulk credential tier update", map[string]interface{}{
		"actorId":   actorId.String(),
		"requested": resp.TotalRequested,
		"updated":   resp.TotalUpdated,
	})
	return resp, nil
}

func (s *adminService) ListPendingTherapists(ctx context.Context) ([]*dto.ComplianceOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.complianceManager.ListPending(ctx, uow)
}

func (s *adminService) GetComplianceOverview(ctx context.Context, therapistId uuid.UUID) (*dto.ComplianceOverviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.complianceManager.Overview(ctx, uow, therapistId)
}

func (s *adminService) GetPolicyConfig(ctx context.Context) (*dto.PolicyConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.pricingManager.Get(ctx, uow)
}

func (s *adminService) UpdatePolicyConfig(ctx context.Context, actorId uuid.UUID, req *dto.UpdatePolicyConfigRequest) (*dto.UpdatePolicyConfigResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	resp, err := s.pricingManager.Update(ctx, uow, actorId, *req)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Pricing reads go through the cache, so a successful write must evict it.
	s.policyService.Invalidate()

	return resp, nil
}

func (s *adminService) GetAuditLogs(ctx context.Context, req *dto.AuditLogListRequest) ([]*dto.AuditLogResponse, error) {
	page := req.Page
	limit := req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.ActionKind != "" {
		specs = append(specs, specification.Filter("action_kind", req.ActionKind))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.AuditRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, &dto.AuditLogResponse{
			Id:         l.Id,
			ActorId:    l.ActorId,
			ActionKind: l.ActionKind,
			TargetId:   l.TargetId,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt,
		})
	}
	return result, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	return s.dashboardAggregator.GetSystemLogs(ctx, page, limit, level)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	return s.dashboardAggregator.GetLogDetail(ctx, logId)
}
