package ports

import (
	"context"
	"time"

	"cokilo-admin/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption of bank
// coordinates at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(adminID uuid.UUID, email, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AdminID uuid.UUID
	Email   string
	Role    string
}

// DecisionLock serialises decisions on a single withdrawal request.
// Acquire returns false when another decision for the same request is
// in flight. The TTL bounds how long a crashed holder can block others.
type DecisionLock interface {
	Acquire(ctx context.Context, withdrawalID int64, ttl time.Duration) (bool, error)
	Release(ctx context.Context, withdrawalID int64) error
}

// --- Service Ports (Business Logic) ---

// WithdrawalService mediates the withdrawal request lifecycle: detail
// lookup, per-user listing, and the irreversible approve/reject decision.
type WithdrawalService interface {
	GetDetail(ctx context.Context, id int64) (*domain.WithdrawalRequest, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
	Approve(ctx context.Context, req DecisionRequest) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, req DecisionRequest) (*domain.WithdrawalRequest, error)
}

// DecisionRequest holds validated input for an approve/reject transition.
// Reason is required for rejections and ignored for approvals.
type DecisionRequest struct {
	WithdrawalID int64
	AdminID      uuid.UUID
	Reason       string
}

// WalletReportingService serves the wallet cohort, history, and stats views.
type WalletReportingService interface {
	ListDZDWallets(ctx context.Context, page int) (*WalletPage, error)
	UserHistory(ctx context.Context, userID int64) ([]domain.LedgerEntry, error)
	Stats(ctx context.Context) (*WalletStats, error)
}

// Pagination describes one page of a listing. Page is clamped server-side
// to Pages so a stale client can never request past the end.
type Pagination struct {
	Page     int   `json:"page"`
	Pages    int   `json:"pages"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// WalletPage is one page of the wallet cohort listing.
type WalletPage struct {
	Wallets    []WalletOverview `json:"wallets"`
	Pagination Pagination       `json:"pagination"`
}

// AuthService defines staff authentication.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult is the successful outcome of a staff login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     domain.Admin
}

// AuditService records audited staff actions (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
