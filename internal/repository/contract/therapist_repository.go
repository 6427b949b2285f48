package contract

import (
	"context"

	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TherapistRepository interface {
	Create(ctx context.Context, therapist *entity.Therapist) error
	Update(ctx context.Context, therapist *entity.Therapist) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Therapist, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Therapist, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Compliance documents. Upsert keys on (therapist_id, document_type).
	UpsertDocument(ctx context.Context, doc *entity.ComplianceDocument) error
	FindDocuments(ctx context.Context, therapistId uuid.UUID) ([]*entity.ComplianceDocument, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error)
}
