package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType is the direction of a ledger line.
type LedgerEntryType string

const (
	LedgerEntryCredit LedgerEntryType = "credit"
	LedgerEntryDebit  LedgerEntryType = "debit"
)

// LedgerKind is the structured category of a ledger line. Older rows
// predate the column and carry an empty kind; see LinksWithdrawal.
type LedgerKind string

const (
	LedgerKindTripPayment      LedgerKind = "trip_payment"
	LedgerKindWithdrawal       LedgerKind = "withdrawal_request"
	LedgerKindWithdrawalRefund LedgerKind = "withdrawal_refund"
	LedgerKindAdjustment       LedgerKind = "adjustment"
)

// legacyWithdrawalMarker is the description substring the old dashboard
// matched to recognise withdrawal lines before the kind column existed.
const legacyWithdrawalMarker = "Demande de retrait"

// LedgerEntry is one line in a user's running wallet history.
type LedgerEntry struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	Type          LedgerEntryType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          LedgerKind      `json:"kind,omitempty"`
	Description   string          `json:"description"`
	TransactionID *int64          `json:"transactionId,omitempty"`
	WithdrawalID  *int64          `json:"withdrawalId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// LinksWithdrawal reports whether this line originates from a withdrawal
// request. The structured kind is authoritative; the description substring
// is kept only for rows written before the kind column was introduced.
func (e *LedgerEntry) LinksWithdrawal() bool {
	if e.Kind != "" {
		return e.Kind == LedgerKindWithdrawal
	}
	return strings.Contains(e.Description, legacyWithdrawalMarker)
}
