package postgres

import (
	"context"
	"errors"
	"fmt"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// GetByUserForUpdate fetches a user's wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByUserForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	query := `SELECT id, user_id, currency, balance::text, created_at, updated_at
		FROM wallets WHERE user_id = $1 AND currency = $2 FOR UPDATE`

	w := &domain.Wallet{}
	var balance string
	err := tx.QueryRow(ctx, query, userID, currency).Scan(
		&w.ID, &w.UserID, &w.Currency, &balance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}

	if w.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("parse wallet balance: %w", err)
	}
	return w, nil
}

// Credit adds an amount to a wallet's balance within a transaction.
func (r *WalletRepo) Credit(ctx context.Context, tx pgx.Tx, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, amount.String(), walletID)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %d", walletID)
	}
	return nil
}

// ListByCurrency returns one page of wallets in a currency joined with
// their owners, plus the total row count for pagination.
func (r *WalletRepo) ListByCurrency(ctx context.Context, params ports.WalletListParams) ([]ports.WalletOverview, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wallets WHERE currency = $1`, params.Currency,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count wallets: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := `SELECT w.user_id, u.email, u.first_name, u.last_name, w.balance::text, w.updated_at
		FROM wallets w
		JOIN users u ON u.id = w.user_id
		WHERE w.currency = $1
		ORDER BY w.updated_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, params.Currency, params.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []ports.WalletOverview{}
	for rows.Next() {
		var o ports.WalletOverview
		var balance string
		if err := rows.Scan(&o.UserID, &o.Email, &o.FirstName, &o.LastName, &balance, &o.LastUpdate); err != nil {
			return nil, 0, fmt.Errorf("scan wallet row: %w", err)
		}
		if o.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, 0, fmt.Errorf("parse wallet balance: %w", err)
		}
		wallets = append(wallets, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, total, nil
}

// GetStats returns wallet count and total balance for one currency.
func (r *WalletRepo) GetStats(ctx context.Context, currency string) (*ports.WalletStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(balance), 0)::text
		FROM wallets WHERE currency = $1`

	stats := &ports.WalletStats{Currency: currency}
	var total string
	err := r.pool.QueryRow(ctx, query, currency).Scan(&stats.WalletCount, &total)
	if err != nil {
		return nil, fmt.Errorf("wallet stats: %w", err)
	}

	if stats.TotalBalance, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total balance: %w", err)
	}
	return stats, nil
}
