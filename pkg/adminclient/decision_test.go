package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionController_Approve_Confirmed(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/wallet/withdrawal/42/approve", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": 42, "status": "approved", "amount": "120.50", "createdAt": "2026-01-10T10:00:00Z"},
		})
	})
	loginOK(t, c)
	d := NewDecisionController(c)

	w, err := d.Approve(context.Background(), 42, func() bool { return true })
	require.NoError(t, err)
	assert.Equal(t, "approved", w.Status)
}

func TestDecisionController_Approve_Declined(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("declined confirmation must not reach the server")
	})
	loginOK(t, c)
	d := NewDecisionController(c)

	_, err := d.Approve(context.Background(), 42, func() bool { return false })
	assert.ErrorIs(t, err, ErrDecisionAborted)
}

func TestDecisionController_Reject_EmptyReason(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("blank reason must not reach the server")
	})
	loginOK(t, c)
	d := NewDecisionController(c)

	_, err := d.Reject(context.Background(), 42, "   ")
	assert.ErrorIs(t, err, ErrEmptyReason)
}

func TestDecisionController_Reject_TrimsReason(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "RIB invalide", body["reason"])
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": 42, "status": "rejected", "amount": "120.50", "createdAt": "2026-01-10T10:00:00Z"},
		})
	})
	loginOK(t, c)
	d := NewDecisionController(c)

	w, err := d.Reject(context.Background(), 42, "  RIB invalide  ")
	require.NoError(t, err)
	assert.Equal(t, "rejected", w.Status)
}

func TestDecisionController_InFlightGate(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"id": 42, "status": "approved", "amount": "120.50", "createdAt": "2026-01-10T10:00:00Z"},
		})
	})
	loginOK(t, c)
	d := NewDecisionController(c)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.Approve(context.Background(), 42, nil)
		assert.NoError(t, err)
	}()

	<-started
	// Second decision on the same request while the first is running.
	_, err := d.Approve(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrDecisionInFlight)

	close(release)
	wg.Wait()

	// Gate reopens once the first decision finished.
	_, err = d.Reject(context.Background(), 42, "fraude")
	assert.NoError(t, err)
}

func TestAuthState_Lifecycle(t *testing.T) {
	s := NewAuthState()
	assert.Equal(t, PhaseAnonymous, s.Phase())

	s.SetSession("tok", time.Now().Add(time.Hour), AdminInfo{Name: "Nadia K."})
	assert.Equal(t, PhaseAuthenticated, s.Phase())
	assert.Equal(t, "Nadia K.", s.Admin().Name)

	s.Clear()
	assert.Equal(t, PhaseAnonymous, s.Phase())
	_, ok := s.Token()
	assert.False(t, ok)
}

func TestAuthState_ExpiredToken(t *testing.T) {
	s := NewAuthState()
	s.SetSession("tok", time.Now().Add(-time.Minute), AdminInfo{})

	_, ok := s.Token()
	assert.False(t, ok, "expired session must not serve a token")
	assert.Equal(t, PhaseAnonymous, s.Phase())
}
