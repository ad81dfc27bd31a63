package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"
	"cokilo-admin/pkg/apperror"

	"github.com/rs/zerolog"
)

// decisionLockTTL bounds how long a crashed or hung decision can keep the
// per-request lock. A stuck operator call can therefore never block a
// request forever.
const decisionLockTTL = 30 * time.Second

// WithdrawalServiceImpl implements ports.WithdrawalService.
type WithdrawalServiceImpl struct {
	withdrawals ports.WithdrawalRepository
	wallets     ports.WalletRepository
	ledger      ports.LedgerRepository
	encSvc      ports.EncryptionService
	lock        ports.DecisionLock
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	withdrawals ports.WithdrawalRepository,
	wallets ports.WalletRepository,
	ledger ports.LedgerRepository,
	encSvc ports.EncryptionService,
	lock ports.DecisionLock,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		withdrawals: withdrawals,
		wallets:     wallets,
		ledger:      ledger,
		encSvc:      encSvc,
		lock:        lock,
		transactor:  transactor,
		log:         log,
	}
}

// GetDetail returns one request with decrypted bank coordinates.
func (s *WithdrawalServiceImpl) GetDetail(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	w, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrWithdrawalNotFound()
	}

	if err := s.decryptCoordinates(w); err != nil {
		return nil, err
	}
	return w, nil
}

// ListForUser returns all requests of one user, newest first. Bank
// coordinates stay encrypted-out (empty) in the listing projection.
func (s *WithdrawalServiceImpl) ListForUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	requests, err := s.withdrawals.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return requests, nil
}

// Approve drives the pending → approved transition. The funds were already
// held when the user filed the request, so approval only finalises the
// state; the actual bank transfer happens outside the system.
func (s *WithdrawalServiceImpl) Approve(ctx context.Context, req ports.DecisionRequest) (*domain.WithdrawalRequest, error) {
	release, err := s.acquireLock(ctx, req.WithdrawalID)
	if err != nil {
		return nil, err
	}
	defer release()

	w, err := s.withdrawals.GetByID(ctx, req.WithdrawalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrWithdrawalNotFound()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	ok, err := s.withdrawals.MarkApproved(ctx, dbTx, req.WithdrawalID, req.AdminID, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark approved: %w", err))
	}
	if !ok {
		// Lost the race: the request already left pending.
		return nil, apperror.ErrAlreadyProcessed()
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	w.Status = domain.WithdrawalStatusApproved
	w.DecidedBy = &req.AdminID
	w.ProcessedAt = &now

	s.log.Info().
		Int64("withdrawal_id", w.ID).
		Int64("user_id", w.UserID).
		Str("admin_id", req.AdminID.String()).
		Str("amount", w.Amount.String()).
		Msg("withdrawal approved")

	return w, nil
}

// Reject drives the pending → rejected transition and, in the same database
// transaction, credits the held amount back to the user's wallet with a
// refund ledger line carrying the reason.
func (s *WithdrawalServiceImpl) Reject(ctx context.Context, req ports.DecisionRequest) (*domain.WithdrawalRequest, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperror.ErrEmptyReason()
	}

	release, err := s.acquireLock(ctx, req.WithdrawalID)
	if err != nil {
		return nil, err
	}
	defer release()

	w, err := s.withdrawals.GetByID(ctx, req.WithdrawalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrWithdrawalNotFound()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	ok, err := s.withdrawals.MarkRejected(ctx, dbTx, req.WithdrawalID, req.AdminID, reason, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark rejected: %w", err))
	}
	if !ok {
		return nil, apperror.ErrAlreadyProcessed()
	}

	// Give the held funds back, under a wallet row lock.
	wallet, err := s.wallets.GetByUserForUpdate(ctx, dbTx, w.UserID, w.Currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if err := s.wallets.Credit(ctx, dbTx, wallet.ID, w.Amount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit wallet: %w", err))
	}

	entry := &domain.LedgerEntry{
		UserID:       w.UserID,
		Type:         domain.LedgerEntryCredit,
		Amount:       w.Amount,
		Kind:         domain.LedgerKindWithdrawalRefund,
		Description:  fmt.Sprintf("Demande de retrait #%d rejetée: %s", w.ID, reason),
		WithdrawalID: &w.ID,
		CreatedAt:    now,
	}
	if err := s.ledger.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	w.Status = domain.WithdrawalStatusRejected
	w.RejectionReason = &reason
	w.DecidedBy = &req.AdminID
	w.ProcessedAt = &now

	s.log.Info().
		Int64("withdrawal_id", w.ID).
		Int64("user_id", w.UserID).
		Str("admin_id", req.AdminID.String()).
		Str("amount", w.Amount.String()).
		Str("reason", reason).
		Msg("withdrawal rejected")

	return w, nil
}

// acquireLock takes the per-request decision lock. The guarded UPDATE is
// the real single-transition safeguard, so a failing lock store degrades
// to allowing the attempt rather than blocking all decisions.
func (s *WithdrawalServiceImpl) acquireLock(ctx context.Context, withdrawalID int64) (func(), error) {
	acquired, err := s.lock.Acquire(ctx, withdrawalID, decisionLockTTL)
	if err != nil {
		s.log.Warn().Err(err).Int64("withdrawal_id", withdrawalID).Msg("decision lock unavailable, proceeding without it")
		return func() {}, nil
	}
	if !acquired {
		return nil, apperror.ErrDecisionInProgress()
	}
	return func() {
		if err := s.lock.Release(context.Background(), withdrawalID); err != nil {
			s.log.Warn().Err(err).Int64("withdrawal_id", withdrawalID).Msg("failed to release decision lock")
		}
	}, nil
}

func (s *WithdrawalServiceImpl) decryptCoordinates(w *domain.WithdrawalRequest) error {
	if w.AccountNumber != "" {
		plain, err := s.encSvc.Decrypt(w.AccountNumber)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("decrypt account number: %w", err))
		}
		w.AccountNumber = plain
	}
	if w.Iban != nil && *w.Iban != "" {
		plain, err := s.encSvc.Decrypt(*w.Iban)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("decrypt iban: %w", err))
		}
		w.Iban = &plain
	}
	return nil
}
