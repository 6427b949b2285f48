// FILE: internal/service/policy_service.go
package service

import (
	"context"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/repository/memory"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/pkg/policy"
)

// IPolicyService resolves the current pricing policy. Reads go through an
// in-process cache; updates are written by the admin pricing manager, which
// invalidates the cache.
type IPolicyService interface {
	Current(ctx context.Context) (*entity.PolicyConfig, error)
	RateCaps(ctx context.Context) (policy.RateCaps, error)
	CancellationFees(ctx context.Context) (policy.CancellationFees, error)
	Invalidate()
}

type policyService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.PolicyCache
}

func NewPolicyService(uowFactory unitofwork.RepositoryFactory, cache *memory.PolicyCache) IPolicyService {
	return &policyService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *policyService) Current(ctx context.Context) (*entity.PolicyConfig, error) {
	if cfg, found := s.cache.Get(); found {
		return cfg, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.PolicyConfigRepository().FindCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = entity.DefaultPolicyConfig()
	}

	s.cache.Set(cfg)
	return cfg, nil
}

func (s *policyService) RateCaps(ctx context.Context) (policy.RateCaps, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return policy.RateCaps{}, err
	}
	return policy.RateCapsFromConfig(cfg), nil
}

func (s *policyService) CancellationFees(ctx context.Context) (policy.CancellationFees, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return policy.CancellationFeesFromConfig(cfg), nil
}

func (s *policyService) Invalidate() {
	s.cache.Invalidate()
}
