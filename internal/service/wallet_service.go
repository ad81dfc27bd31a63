package service

import (
	"context"
	"fmt"
	"math"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"
	"cokilo-admin/pkg/apperror"
)

// dzdCurrency is the cohort the manual-withdrawal workflow applies to.
const dzdCurrency = "DZD"

const walletPageSize = 20

// walletReportingService implements ports.WalletReportingService.
type walletReportingService struct {
	wallets     ports.WalletRepository
	ledger      ports.LedgerRepository
	withdrawals ports.WithdrawalRepository
}

// NewWalletReportingService creates a new wallet reporting service.
func NewWalletReportingService(
	wallets ports.WalletRepository,
	ledger ports.LedgerRepository,
	withdrawals ports.WithdrawalRepository,
) ports.WalletReportingService {
	return &walletReportingService{
		wallets:     wallets,
		ledger:      ledger,
		withdrawals: withdrawals,
	}
}

// ListDZDWallets returns one page of the DZD wallet cohort. The requested
// page is clamped to the last available page after counting, so a page
// number that went stale under concurrent deletions still yields data.
func (s *walletReportingService) ListDZDWallets(ctx context.Context, page int) (*ports.WalletPage, error) {
	if page < 1 {
		page = 1
	}

	params := ports.WalletListParams{
		Currency: dzdCurrency,
		Page:     page,
		PageSize: walletPageSize,
	}

	wallets, total, err := s.wallets.ListByCurrency(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}

	pages := int(math.Ceil(float64(total) / float64(walletPageSize)))
	if pages < 1 {
		pages = 1
	}

	if page > pages {
		params.Page = pages
		wallets, total, err = s.wallets.ListByCurrency(ctx, params)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("list wallets (clamped): %w", err))
		}
		page = pages
	}

	return &ports.WalletPage{
		Wallets: wallets,
		Pagination: ports.Pagination{
			Page:     page,
			Pages:    pages,
			PageSize: walletPageSize,
			Total:    total,
		},
	}, nil
}

// UserHistory returns the full wallet ledger of one user, newest first.
func (s *walletReportingService) UserHistory(ctx context.Context, userID int64) ([]domain.LedgerEntry, error) {
	history, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list ledger: %w", err))
	}
	return history, nil
}

// Stats returns the aggregate numbers for the wallet dashboard tile.
func (s *walletReportingService) Stats(ctx context.Context) (*ports.WalletStats, error) {
	stats, err := s.wallets.GetStats(ctx, dzdCurrency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet stats: %w", err))
	}

	pending, err := s.withdrawals.CountPending(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count pending withdrawals: %w", err))
	}
	stats.PendingWithdrawals = pending

	return stats, nil
}
