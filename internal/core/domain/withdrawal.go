package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus represents the lifecycle state of a withdrawal request.
// A request starts pending and transitions at most once, to approved or
// rejected. Both terminal states are final; the store never reopens them.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a user's instruction to move held wallet funds to an
// external bank account, awaiting a manual staff decision. Bank coordinates
// are stored encrypted and only decrypted for the detail view.
type WithdrawalRequest struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"userId"`
	UserName        string           `json:"userName"`
	UserEmail       string           `json:"userEmail"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	BankName        string           `json:"bankName"`
	AccountNumber   string           `json:"accountNumber"`
	AccountHolder   string           `json:"accountHolder"`
	SwiftBic        *string          `json:"swiftBic,omitempty"`
	Iban            *string          `json:"iban,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Status          WithdrawalStatus `json:"status"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	DecidedBy       *uuid.UUID       `json:"-"`
	CreatedAt       time.Time        `json:"createdAt"`
	ProcessedAt     *time.Time       `json:"processedAt,omitempty"`
}

// IsPending returns true if the request still awaits a decision.
func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == WithdrawalStatusPending
}

// IsTerminal returns true if the request reached a final state.
func (w *WithdrawalRequest) IsTerminal() bool {
	return w.Status == WithdrawalStatusApproved || w.Status == WithdrawalStatusRejected
}
