package dashboard

import (
	"context"
	"time"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/repository/specification"
	"teletherapy-be/internal/repository/unitofwork"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves dashboard statistics
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardStatsResponse, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	activeTherapists, err := uow.TherapistRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.TherapistStatusActive)})
	if err != nil {
		return nil, err
	}

	pendingTherapists, err := uow.TherapistRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.TherapistStatusPending)})
	if err != nil {
		return nil, err
	}

	activeSubs, err := uow.SubscriptionRepository().CountActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := uow.SubscriptionRepository().GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalUsers:        int(totalUsers),
		ActiveTherapists:  int(activeTherapists),
		PendingTherapists: int(pendingTherapists),
		ActiveSubscribers: activeSubs,
		TotalRevenue:      totalRevenue,
	}, nil
}

// GetSystemLogs retrieves system logs
func (a *Aggregator) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	logs, err := a.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := a.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
