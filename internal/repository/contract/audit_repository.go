package contract

import (
	"context"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/repository/specification"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
}
