package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"cokilo-admin/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentDecisions fires a burst of approve and reject calls at one
// pending withdrawal. Exactly one call may win: the rest must come back as
// conflicts, and the wallet must be credited at most once regardless of
// which side wins.
func TestConcurrentDecisions(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWithdrawal(t, 42, 7, "120.50")
	app.seedWallet(t, 55, 7, "EUR", "0.00")
	token := app.login(t)

	concurrency := 20
	rejectBody, _ := json.Marshal(map[string]string{"reason": "RIB invalide"})

	var wg sync.WaitGroup
	var wonCount, conflictCount, otherCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			path := fmt.Sprintf("%s/api/admin/wallet/withdrawal/42/approve", app.server.URL)
			var body []byte
			if idx%2 == 1 {
				path = fmt.Sprintf("%s/api/admin/wallet/withdrawal/42/reject", app.server.URL)
				body = rejectBody
			}

			req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				otherCount.Add(1)
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			switch resp.StatusCode {
			case http.StatusOK:
				wonCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), wonCount.Load(), "exactly one decision must win")
	assert.Equal(t, int64(concurrency-1), conflictCount.Load())
	assert.Equal(t, int64(0), otherCount.Load())

	// The request reached a terminal state
	w, err := app.withdrawals.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, w.IsTerminal())

	// At most one refund, and only if the reject side won
	switch w.Status {
	case domain.WithdrawalStatusRejected:
		assert.Equal(t, "120.5", app.wallets.balance(55).String())
		assert.Equal(t, 1, app.ledger.refundCount(42))
	case domain.WithdrawalStatusApproved:
		assert.Equal(t, "0", app.wallets.balance(55).String())
		assert.Equal(t, 0, app.ledger.refundCount(42))
	}
}

// TestConcurrentDecisions_DistinctRequests checks that decisions on
// different withdrawals do not contend with each other.
func TestConcurrentDecisions_DistinctRequests(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	n := 10
	for i := 1; i <= n; i++ {
		app.seedWithdrawal(t, int64(i), int64(100+i), "50.00")
	}
	token := app.login(t)

	var wg sync.WaitGroup
	var wonCount atomic.Int64

	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			path := fmt.Sprintf("%s/api/admin/wallet/withdrawal/%d/approve", app.server.URL, id)
			req, _ := http.NewRequest(http.MethodPost, path, nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			if resp.StatusCode == http.StatusOK {
				wonCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(n), wonCount.Load(), "independent requests must not contend")

	pending, err := app.withdrawals.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
}
