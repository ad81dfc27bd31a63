package adminclient

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Decision controller errors.
var (
	// ErrDecisionInFlight means a decision for the same request is
	// already running in this process; the second attempt is dropped
	// rather than queued.
	ErrDecisionInFlight = errors.New("adminclient: decision already in flight for this request")

	// ErrEmptyReason means a rejection was attempted without a usable
	// reason. The server enforces this too; checking here avoids a
	// round-trip.
	ErrEmptyReason = errors.New("adminclient: rejection reason is required")

	// ErrDecisionAborted means the operator declined the confirmation.
	ErrDecisionAborted = errors.New("adminclient: decision aborted by operator")
)

// DecisionController serialises approve/reject calls per withdrawal id.
// Double-clicks and racing UI events collapse into one API call; the
// server's single-transition guarantee remains the final authority.
type DecisionController struct {
	client *Client

	mu       sync.Mutex
	inflight map[int64]struct{}
}

// NewDecisionController wraps a client with per-request decision gating.
func NewDecisionController(client *Client) *DecisionController {
	return &DecisionController{
		client:   client,
		inflight: make(map[int64]struct{}),
	}
}

// Approve finalises a pending request. When confirm is non-nil it runs
// before the API call; returning false aborts with ErrDecisionAborted.
func (d *DecisionController) Approve(ctx context.Context, id int64, confirm func() bool) (*Withdrawal, error) {
	release, err := d.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	if confirm != nil && !confirm() {
		return nil, ErrDecisionAborted
	}
	return d.client.ApproveWithdrawal(ctx, id)
}

// Reject rejects a pending request. The reason is trimmed; a blank
// reason never reaches the API.
func (d *DecisionController) Reject(ctx context.Context, id int64, reason string) (*Withdrawal, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	release, err := d.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	return d.client.RejectWithdrawal(ctx, id, reason)
}

func (d *DecisionController) acquire(id int64) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[id]; busy {
		return nil, ErrDecisionInFlight
	}
	d.inflight[id] = struct{}{}
	return func() {
		d.mu.Lock()
		delete(d.inflight, id)
		d.mu.Unlock()
	}, nil
}
