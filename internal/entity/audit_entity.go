// FILE: internal/entity/audit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is a best-effort record of an admin or system action. Writes
// never block the operation they describe.
type AuditLog struct {
	Id         uuid.UUID
	ActorId    *uuid.UUID
	ActionKind string
	TargetId   *uuid.UUID
	Details    map[string]interface{}
	CreatedAt  time.Time
}
