// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentKind string

const (
	PaymentKindSession         PaymentKind = "session_payment"
	PaymentKindCancellationFee PaymentKind = "cancellation_fee"
)

// Payment is one charge record tied to a session. At most one record may
// exist per (session, kind) pair.
type Payment struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Amount     float64
	Currency   string
	Status     PaymentStatus
	Kind       PaymentKind
	GatewayRef *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
