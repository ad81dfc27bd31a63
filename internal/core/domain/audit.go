package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited staff action.
type AuditAction string

const (
	AuditActionLogin             AuditAction = "LOGIN"
	AuditActionApproveWithdrawal AuditAction = "APPROVE_WITHDRAWAL"
	AuditActionRejectWithdrawal  AuditAction = "REJECT_WITHDRAWAL"
)

// AuditLog records a single audited staff action. Withdrawal decisions are
// irreversible, so every one of them leaves a trail of who did what from where.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	AdminID      *uuid.UUID  `json:"admin_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
