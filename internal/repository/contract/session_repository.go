package contract

import (
	"context"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	// Count supports the quota window query: sessions for a client in a
	// status set whose scheduled date falls inside a period.
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
