package postgres

import (
	"context"
	"fmt"

	"cokilo-admin/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create inserts a ledger line within a transaction and backfills its id.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	query := `INSERT INTO wallet_ledger
			(user_id, type, amount, kind, description, transaction_id, withdrawal_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		entry.UserID, entry.Type, entry.Amount.String(), entry.Kind,
		entry.Description, entry.TransactionID, entry.WithdrawalID, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByUser returns the full ledger of one user, newest first.
func (r *LedgerRepo) ListByUser(ctx context.Context, userID int64) ([]domain.LedgerEntry, error) {
	query := `SELECT id, user_id, type, amount::text, kind, description,
			transaction_id, withdrawal_id, created_at
		FROM wallet_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list ledger by user: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var amount string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Type, &amount, &e.Kind, &e.Description,
			&e.TransactionID, &e.WithdrawalID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse ledger amount: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return entries, nil
}
