package service

import (
	"context"
	"testing"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"
	"cokilo-admin/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	svc         ports.WalletReportingService
	wallets     *mocks.MockWalletRepository
	ledger      *mocks.MockLedgerRepository
	withdrawals *mocks.MockWithdrawalRepository
	ctrl        *gomock.Controller
}

func setupWalletService(t *testing.T) *walletTestDeps {
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		wallets:     mocks.NewMockWalletRepository(ctrl),
		ledger:      mocks.NewMockLedgerRepository(ctrl),
		withdrawals: mocks.NewMockWithdrawalRepository(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewWalletReportingService(d.wallets, d.ledger, d.withdrawals)
	return d
}

func TestWalletService_ListDZDWallets_FirstPage(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	rows := []ports.WalletOverview{
		{UserID: 1, Email: "a@example.com", Balance: decimal.NewFromInt(5000)},
		{UserID: 2, Email: "b@example.com", Balance: decimal.NewFromInt(130)},
	}
	d.wallets.EXPECT().
		ListByCurrency(ctx, ports.WalletListParams{Currency: "DZD", Page: 1, PageSize: walletPageSize}).
		Return(rows, int64(2), nil)

	page, err := d.svc.ListDZDWallets(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Wallets, 2)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 1, page.Pagination.Pages)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestWalletService_ListDZDWallets_ClampsPastEnd(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	// 25 wallets means 2 pages; page 9 is clamped to page 2 and refetched.
	d.wallets.EXPECT().
		ListByCurrency(ctx, ports.WalletListParams{Currency: "DZD", Page: 9, PageSize: walletPageSize}).
		Return([]ports.WalletOverview{}, int64(25), nil)
	d.wallets.EXPECT().
		ListByCurrency(ctx, ports.WalletListParams{Currency: "DZD", Page: 2, PageSize: walletPageSize}).
		Return([]ports.WalletOverview{{UserID: 21}}, int64(25), nil)

	page, err := d.svc.ListDZDWallets(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 2, page.Pagination.Pages)
	assert.Len(t, page.Wallets, 1)
}

func TestWalletService_ListDZDWallets_ZeroPageDefaultsToFirst(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.wallets.EXPECT().
		ListByCurrency(ctx, ports.WalletListParams{Currency: "DZD", Page: 1, PageSize: walletPageSize}).
		Return([]ports.WalletOverview{}, int64(0), nil)

	page, err := d.svc.ListDZDWallets(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 1, page.Pagination.Pages)
}

func TestWalletService_UserHistory(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{ID: 2, UserID: 3, Type: domain.LedgerEntryCredit, Amount: decimal.NewFromInt(40)},
		{ID: 1, UserID: 3, Type: domain.LedgerEntryDebit, Amount: decimal.NewFromInt(15)},
	}
	d.ledger.EXPECT().ListByUser(ctx, int64(3)).Return(entries, nil)

	got, err := d.svc.UserHistory(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestWalletService_Stats_CombinesPendingCount(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.wallets.EXPECT().GetStats(ctx, "DZD").Return(&ports.WalletStats{
		Currency:     "DZD",
		WalletCount:  12,
		TotalBalance: decimal.NewFromInt(93000),
	}, nil)
	d.withdrawals.EXPECT().CountPending(ctx).Return(int64(4), nil)

	stats, err := d.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.WalletCount)
	assert.Equal(t, int64(4), stats.PendingWithdrawals)
}
