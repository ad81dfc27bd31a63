package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu       sync.RWMutex
	requests map[int64]*domain.WithdrawalRequest
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{requests: make(map[int64]*domain.WithdrawalRequest)}
}

func (r *inMemoryWithdrawalRepo) seed(w *domain.WithdrawalRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[w.ID] = w
}

func (r *inMemoryWithdrawalRepo) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWithdrawalRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WithdrawalRequest
	for _, w := range r.requests {
		if w.UserID == userID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryWithdrawalRepo) CountPending(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, w := range r.requests {
		if w.Status == domain.WithdrawalStatusPending {
			n++
		}
	}
	return n, nil
}

// MarkApproved mirrors the guarded UPDATE: the transition only fires while
// the request is still pending, under the repo lock.
func (r *inMemoryWithdrawalRepo) MarkApproved(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.requests[id]
	if !ok || w.Status != domain.WithdrawalStatusPending {
		return false, nil
	}
	w.Status = domain.WithdrawalStatusApproved
	w.DecidedBy = &adminID
	w.ProcessedAt = &at
	return true, nil
}

func (r *inMemoryWithdrawalRepo) MarkRejected(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.requests[id]
	if !ok || w.Status != domain.WithdrawalStatusPending {
		return false, nil
	}
	w.Status = domain.WithdrawalStatusRejected
	w.RejectionReason = &reason
	w.DecidedBy = &adminID
	w.ProcessedAt = &at
	return true, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[int64]*domain.Wallet
	owners  map[int64]walletOwner
}

type walletOwner struct {
	email     string
	firstName string
	lastName  string
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{
		wallets: make(map[int64]*domain.Wallet),
		owners:  make(map[int64]walletOwner),
	}
}

func (r *inMemoryWalletRepo) seed(w *domain.Wallet, email, firstName, lastName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = w
	r.owners[w.ID] = walletOwner{email: email, firstName: firstName, lastName: lastName}
}

func (r *inMemoryWalletRepo) balance(walletID int64) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wallets[walletID].Balance
}

func (r *inMemoryWalletRepo) GetByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID && w.Currency == currency {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) Credit(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryWalletRepo) ListByCurrency(ctx context.Context, params ports.WalletListParams) ([]ports.WalletOverview, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []ports.WalletOverview
	for id, w := range r.wallets {
		if w.Currency != params.Currency {
			continue
		}
		owner := r.owners[id]
		result = append(result, ports.WalletOverview{
			UserID:     w.UserID,
			Email:      owner.email,
			FirstName:  owner.firstName,
			LastName:   owner.lastName,
			Balance:    w.Balance,
			LastUpdate: w.UpdatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastUpdate.After(result[j].LastUpdate)
	})
	total := int64(len(result))

	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []ports.WalletOverview{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryWalletRepo) GetStats(ctx context.Context, currency string) (*ports.WalletStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.WalletStats{Currency: currency}
	for _, w := range r.wallets {
		if w.Currency != currency {
			continue
		}
		stats.WalletCount++
		stats.TotalBalance = stats.TotalBalance.Add(w.Balance)
	}
	return stats, nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries []domain.LedgerEntry
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{nextID: 1}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryLedgerRepo) ListByUser(ctx context.Context, userID int64) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryLedgerRepo) refundCount(withdrawalID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if e.Kind == domain.LedgerKindWithdrawalRefund && e.WithdrawalID != nil && *e.WithdrawalID == withdrawalID {
			n++
		}
	}
	return n
}

// --- In-Memory Admin Repo ---

type inMemoryAdminRepo struct {
	mu     sync.RWMutex
	admins map[string]*domain.Admin
}

func newInMemoryAdminRepo() *inMemoryAdminRepo {
	return &inMemoryAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *inMemoryAdminRepo) seed(a *domain.Admin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.Email] = a
}

func (r *inMemoryAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[email]
	if !ok {
		return nil, nil
	}
	return a, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	entries []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryAuditRepo) countAction(action domain.AuditAction) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
