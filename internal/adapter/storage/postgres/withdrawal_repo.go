package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cokilo-admin/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// GetByID fetches one withdrawal request joined with its owner. Bank
// coordinates come back as stored, i.e. still encrypted.
func (r *WithdrawalRepo) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	query := `SELECT w.id, w.user_id, u.first_name || ' ' || u.last_name, u.email,
			w.amount::text, w.currency, w.bank_name, w.account_number, w.account_holder,
			w.swift_bic, w.iban, w.notes, w.status, w.rejection_reason, w.decided_by,
			w.created_at, w.processed_at
		FROM withdrawal_requests w
		JOIN users u ON u.id = w.user_id
		WHERE w.id = $1`

	w := &domain.WithdrawalRequest{}
	var amount string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.UserName, &w.UserEmail,
		&amount, &w.Currency, &w.BankName, &w.AccountNumber, &w.AccountHolder,
		&w.SwiftBic, &w.Iban, &w.Notes, &w.Status, &w.RejectionReason, &w.DecidedBy,
		&w.CreatedAt, &w.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal by id: %w", err)
	}

	if w.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse withdrawal amount: %w", err)
	}
	return w, nil
}

// ListByUser returns all withdrawal requests of one user, newest first.
// The listing projection leaves the encrypted bank coordinates out.
func (r *WithdrawalRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	query := `SELECT w.id, w.user_id, u.first_name || ' ' || u.last_name, u.email,
			w.amount::text, w.currency, w.bank_name, w.account_holder,
			w.status, w.rejection_reason, w.created_at, w.processed_at
		FROM withdrawal_requests w
		JOIN users u ON u.id = w.user_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals by user: %w", err)
	}
	defer rows.Close()

	requests := []domain.WithdrawalRequest{}
	for rows.Next() {
		var w domain.WithdrawalRequest
		var amount string
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.UserName, &w.UserEmail,
			&amount, &w.Currency, &w.BankName, &w.AccountHolder,
			&w.Status, &w.RejectionReason, &w.CreatedAt, &w.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		if w.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse withdrawal amount: %w", err)
		}
		requests = append(requests, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return requests, nil
}

// CountPending counts requests still awaiting a decision.
func (r *WithdrawalRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM withdrawal_requests WHERE status = 'pending'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending withdrawals: %w", err)
	}
	return count, nil
}

// MarkApproved flips a pending request to approved inside the given
// transaction. Returns false when the request already left pending,
// which is how a concurrent decision surfaces.
func (r *WithdrawalRepo) MarkApproved(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, at time.Time) (bool, error) {
	query := `UPDATE withdrawal_requests
		SET status = 'approved', decided_by = $2, processed_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, id, adminID, at)
	if err != nil {
		return false, fmt.Errorf("mark withdrawal approved: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkRejected flips a pending request to rejected with the operator's
// reason, inside the given transaction. Same zero-rows semantics as
// MarkApproved.
func (r *WithdrawalRepo) MarkRejected(ctx context.Context, tx pgx.Tx, id int64, adminID uuid.UUID, reason string, at time.Time) (bool, error) {
	query := `UPDATE withdrawal_requests
		SET status = 'rejected', rejection_reason = $4, decided_by = $2, processed_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := tx.Exec(ctx, query, id, adminID, at, reason)
	if err != nil {
		return false, fmt.Errorf("mark withdrawal rejected: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
