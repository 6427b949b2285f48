package unitofwork

import (
	"context"

	"teletherapy-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TherapistRepository() contract.TherapistRepository
	ClientRepository() contract.ClientRepository
	SessionRepository() contract.SessionRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PaymentRepository() contract.PaymentRepository
	PolicyConfigRepository() contract.PolicyConfigRepository
	AuditRepository() contract.AuditRepository
}
