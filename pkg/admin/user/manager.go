package user

import (
	"context"
	"time"

	"teletherapy-be/internal/apperror"
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
	adminEvents "teletherapy-be/pkg/admin/events"

	"github.com/google/uuid"
)

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewManager creates a new user manager
func NewManager(logger logger.ILogger, publisher adminEvents.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// FindAll retrieves users with pagination and optional role/status filters
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.AdminUserListRequest) ([]*entity.User, error) {
	page := req.Page
	limit := req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	specs := []specification.Specification{
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.Role != "" {
		specs = append(specs, specification.Filter("role", req.Role))
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Search != "" {
		specs = append(specs, specification.SearchNameOrEmail{Query: req.Search})
	}

	return uow.UserRepository().FindAll(ctx, specs...)
}

// FindOne retrieves a single user by ID
func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}
	return user, nil
}

// UpdateStatus transitions a user between active, pending and blocked,
// records an audit row and emits a status-changed event.
func (m *Manager) UpdateStatus(ctx context.Context, uow unitofwork.UnitOfWork, actorId, userId uuid.UUID, req *dto.UpdateUserStatusRequest) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	previous := user.Status
	user.Status = entity.UserStatus(req.Status)
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	audit := &entity.AuditLog{
		Id:         uuid.New(),
		ActorId:    &actorId,
		ActionKind: "user_status_changed",
		TargetId:   &userId,
		Details: map[string]interface{}{
			"previous_status": string(previous),
			"new_status":      req.Status,
			"reason":          req.Reason,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.AuditRepository().Create(ctx, audit); err != nil {
		m.logger.Warn("AdminUser", "Failed to write audit log", map[string]interface{}{
			"userId": userId.String(),
			"error":  err.Error(),
		})
	}

	m.publisher.PublishUserStatusChanged(ctx, userId, string(previous), req.Status, req.Reason)

	m.logger.Info("AdminUser", "Updated user status", map[string]interface{}{
		"userId":   userId.String(),
		"previous": string(previous),
		"status":   req.Status,
	})

	return user, nil
}
