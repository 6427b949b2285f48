// FILE: internal/model/policy_config_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PolicyConfig is the persisted replacement for what used to be mutable
// module-level pricing globals. The latest row wins.
type PolicyConfig struct {
	Id               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LicensedRateCap  float64           `gorm:"type:decimal(10,2);not null"`
	AssistantRateCap float64           `gorm:"type:decimal(10,2);not null"`
	CancellationFees datatypes.JSONMap `gorm:"not null"`
	UpdatedBy        *uuid.UUID        `gorm:"type:uuid"`
	CreatedAt        time.Time         `gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime"`
}

func (PolicyConfig) TableName() string {
	return "policy_configs"
}
