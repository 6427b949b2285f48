package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User Management ---

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
}

type UserListResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending blocked"`
	Reason string `json:"reason,omitempty"`
}

// --- Credential Management ---

type UpdateCredentialTierRequest struct {
	CredentialTier string `json:"credential_tier" validate:"required,oneof=licensed_professional supervised_assistant"`
}

type UpdateCredentialTierResponse struct {
	TherapistId  uuid.UUID `json:"therapist_id"`
	PreviousTier string    `json:"previous_tier"`
	NewTier      string    `json:"new_tier"`
	PreviousRate float64   `json:"previous_rate"`
	NewRate      float64   `json:"new_rate"`
	RateClamped  bool      `json:"rate_clamped"`
}

type BulkUpdateCredentialTierRequest struct {
	TherapistIds   []uuid.UUID `json:"therapist_ids" validate:"required,min=1"`
	CredentialTier string      `json:"credential_tier" validate:"required,oneof=licensed_professional supervised_assistant"`
}

type BulkUpdateCredentialTierResponse struct {
	TotalRequested     int         `json:"total_requested"`
	TotalUpdated       int         `json:"total_updated"`
	FailedTherapistIds []uuid.UUID `json:"failed_therapist_ids,omitempty"`
}

// --- Policy Configuration ---

type UpdatePolicyConfigRequest struct {
	LicensedRateCap  *float64           `json:"licensed_rate_cap" validate:"omitempty,gt=0"`
	AssistantRateCap *float64           `json:"assistant_rate_cap" validate:"omitempty,gt=0"`
	CancellationFees map[string]float64 `json:"cancellation_fees" validate:"omitempty,dive,gte=0"`
}

type PolicyConfigResponse struct {
	LicensedRateCap  float64            `json:"licensed_rate_cap"`
	AssistantRateCap float64            `json:"assistant_rate_cap"`
	CancellationFees map[string]float64 `json:"cancellation_fees"`
	UpdatedBy        *uuid.UUID         `json:"updated_by,omitempty"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// UpdatePolicyConfigResponse reports how many active therapists had their
// rate re-clamped by the new caps.
type UpdatePolicyConfigResponse struct {
	Config             PolicyConfigResponse `json:"config"`
	TherapistsReviewed int                  `json:"therapists_reviewed"`
	RatesClamped       int                  `json:"rates_clamped"`
}

// --- Compliance Review ---

type ComplianceOverviewResponse struct {
	TherapistId       uuid.UUID          `json:"therapist_id"`
	CredentialTier    string             `json:"credential_tier"`
	Status            string             `json:"status"`
	PrimarySatisfied  bool               `json:"primary_satisfied"`
	RegionalSatisfied bool               `json:"regional_satisfied"`
	LegacySatisfied   bool               `json:"legacy_satisfied"`
	Eligible          bool               `json:"eligible"`
	MissingDocuments  []string           `json:"missing_documents"`
	Documents         []DocumentResponse `json:"documents"`
}

// --- Dashboard ---

type DashboardStatsResponse struct {
	TotalUsers        int     `json:"total_users"`
	ActiveTherapists  int     `json:"active_therapists"`
	PendingTherapists int     `json:"pending_therapists"`
	ActiveSubscribers int     `json:"active_subscribers"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// --- System Logs ---

type LogListRequest struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Level string `query:"level"`
}

type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details,omitempty"`
}

// --- Audit ---

type AuditLogListRequest struct {
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	ActionKind string `query:"action_kind"`
}

type AuditLogResponse struct {
	Id         uuid.UUID              `json:"id"`
	ActorId    *uuid.UUID             `json:"actor_id,omitempty"`
	ActionKind string                 `json:"action_kind"`
	TargetId   *uuid.UUID             `json:"target_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
