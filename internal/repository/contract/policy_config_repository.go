package contract

import (
	"context"

	"teletherapy-be/internal/entity"
)

type PolicyConfigRepository interface {
	// FindCurrent returns the most recently saved config, or nil when the
	// table is empty and platform defaults apply.
	FindCurrent(ctx context.Context) (*entity.PolicyConfig, error)
	Save(ctx context.Context, config *entity.PolicyConfig) error
}
