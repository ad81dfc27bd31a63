package ports

import (
	"context"
	"time"

	"cokilo-admin/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WithdrawalRepository defines persistence operations for withdrawal requests.
// Decision methods take pgx.Tx and run a guarded UPDATE restricted to the
// pending state; they report false when the request already left pending,
// which is how a lost race against a concurrent decision surfaces.
type WithdrawalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
	CountPending(ctx context.Context) (int64, error)
	MarkApproved(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, reason string, at time.Time) (bool, error)
}

// WalletRepository defines persistence operations for user wallets.
type WalletRepository interface {
	GetByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error)
	Credit(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error
	ListByCurrency(ctx context.Context, params WalletListParams) ([]WalletOverview, int64, error)
	GetStats(ctx context.Context, currency string) (*WalletStats, error)
}

// WalletListParams holds filter + pagination for the wallet cohort listing.
type WalletListParams struct {
	Currency string
	Page     int
	PageSize int
}

// WalletOverview is the cohort-view projection of a wallet joined with its owner.
type WalletOverview struct {
	UserID     int64           `json:"userId"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Balance    decimal.Decimal `json:"balance"`
	LastUpdate time.Time       `json:"lastUpdate"`
}

// WalletStats holds aggregate numbers for the wallet dashboard tile.
type WalletStats struct {
	Currency           string          `json:"currency"`
	WalletCount        int64           `json:"walletCount"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	PendingWithdrawals int64           `json:"pendingWithdrawals"`
}

// LedgerRepository defines persistence operations for wallet ledger lines.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	ListByUser(ctx context.Context, userID int64) ([]domain.LedgerEntry, error)
}

// AdminRepository defines persistence operations for staff accounts.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// AuditRepository persists staff-action audit records.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
