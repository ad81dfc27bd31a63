package dto

import (
	"time"

	"cokilo-admin/internal/core/domain"
)

// LoginRequest is the request body for staff login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// AdminResponse is the public projection of a staff account.
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewAdminResponse maps a domain admin to its public projection.
func NewAdminResponse(a domain.Admin) AdminResponse {
	return AdminResponse{
		ID:    a.ID.String(),
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}

// RejectRequest is the request body for rejecting a withdrawal.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,notblank,max=500"`
}

// WithdrawalListResponse wraps a user's withdrawal requests.
type WithdrawalListResponse struct {
	Requests []domain.WithdrawalRequest `json:"requests"`
}

// HistoryResponse wraps a user's wallet ledger.
type HistoryResponse struct {
	History []domain.LedgerEntry `json:"history"`
}
