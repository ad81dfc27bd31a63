package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's in-app balance in a single currency. Withdrawal
// amounts are debited (held) when the user files the request, so the
// balance never includes funds awaiting a decision.
type Wallet struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
