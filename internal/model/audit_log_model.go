// FILE: internal/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorId    *uuid.UUID        `gorm:"type:uuid;index"`
	ActionKind string            `gorm:"type:varchar(100);not null;index"`
	TargetId   *uuid.UUID        `gorm:"type:uuid;index"`
	Details    datatypes.JSONMap
	CreatedAt  time.Time         `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
