package postgres

import (
	"context"
	"testing"
	"time"

	"cokilo-admin/internal/core/ports"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepo_GetByUserForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE user_id .+ FOR UPDATE").
		WithArgs(int64(7), "EUR").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "currency", "balance", "created_at", "updated_at"}).
			AddRow(int64(55), int64(7), "EUR", "310.25", now, now))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	w, err := repo.GetByUserForUpdate(context.Background(), tx, 7, "EUR")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, int64(55), w.ID)
	assert.Equal(t, "310.25", w.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByUserForUpdate_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE user_id .+ FOR UPDATE").
		WithArgs(int64(99), "EUR").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "currency", "balance", "created_at", "updated_at"}))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	w, err := repo.GetByUserForUpdate(context.Background(), tx, 99, "EUR")
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Credit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs("120.5", int64(55)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Credit(context.Background(), tx, 55, decimal.RequireFromString("120.50"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ListByCurrency(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("DZD").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))
	mock.ExpectQuery("SELECT .+ FROM wallets w").
		WithArgs("DZD", 20, 20).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "email", "first_name", "last_name", "balance", "updated_at"}).
			AddRow(int64(3), "karim@example.com", "Karim", "Z.", "15000.00", now))

	wallets, total, err := repo.ListByCurrency(context.Background(), ports.WalletListParams{
		Currency: "DZD", Page: 2, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	require.Len(t, wallets, 1)
	assert.Equal(t, "karim@example.com", wallets[0].Email)
	assert.Equal(t, "15000", wallets[0].Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT COUNT.+ FROM wallets").
		WithArgs("DZD").
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(int64(12), "93000.00"))

	stats, err := repo.GetStats(context.Background(), "DZD")
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.WalletCount)
	assert.Equal(t, "93000", stats.TotalBalance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
