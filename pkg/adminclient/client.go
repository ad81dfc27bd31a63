// Package adminclient is the operator-side client for the CoKilo admin
// API: staff login, withdrawal review and decisions, wallet reporting.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the admin API. Message carries the
// server's error string verbatim; the UI layers display it as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the admin API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ErrNotAuthenticated is returned when a call needs a session and the
// auth state has none (or it expired).
var ErrNotAuthenticated = errors.New("adminclient: not authenticated")

// Withdrawal is one withdrawal request as served by the admin API.
type Withdrawal struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	UserName        string     `json:"userName"`
	UserEmail       string     `json:"userEmail"`
	Amount          Amount     `json:"amount"`
	Currency        string     `json:"currency"`
	BankName        string     `json:"bankName"`
	AccountNumber   string     `json:"accountNumber"`
	AccountHolder   string     `json:"accountHolder"`
	SwiftBic        *string    `json:"swiftBic,omitempty"`
	Iban            *string    `json:"iban,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
}

// LedgerEntry is one wallet ledger line.
type LedgerEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Type         string    `json:"type"`
	Amount       Amount    `json:"amount"`
	Kind         string    `json:"kind"`
	Description  string    `json:"description"`
	WithdrawalID *int64    `json:"withdrawalId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WalletOverview is one row of the wallet cohort listing.
type WalletOverview struct {
	UserID     int64     `json:"userId"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Balance    Amount    `json:"balance"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page     int   `json:"page"`
	Pages    int   `json:"pages"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// WalletPage is one page of the wallet cohort.
type WalletPage struct {
	Wallets    []WalletOverview `json:"wallets"`
	Pagination Pagination       `json:"pagination"`
}

// WalletStats holds the dashboard tile aggregates.
type WalletStats struct {
	Currency           string `json:"currency"`
	WalletCount        int64  `json:"walletCount"`
	TotalBalance       Amount `json:"totalBalance"`
	PendingWithdrawals int64  `json:"pendingWithdrawals"`
}

// Client talks to the admin API. All calls take a context; a hung server
// is bounded by both the context and the HTTP client timeout.
type Client struct {
	baseURL string
	httpc   *http.Client
	auth    *AuthState
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// New creates a Client for the given base URL, e.g.
// "https://api.cokilo.com/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		auth:    NewAuthState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Auth exposes the session state.
func (c *Client) Auth() *AuthState {
	return c.auth
}

// Login authenticates the operator and installs the session.
func (c *Client) Login(ctx context.Context, email, password string) (AdminInfo, error) {
	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
		Admin     AdminInfo `json:"admin"`
	}
	err := c.do(ctx, http.MethodPost, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out, false)
	if err != nil {
		return AdminInfo{}, err
	}

	c.auth.SetSession(out.Token, out.ExpiresAt, out.Admin)
	return out.Admin, nil
}

// Logout drops the session client-side.
func (c *Client) Logout() {
	c.auth.Clear()
}

// Withdrawal fetches one request with decrypted bank coordinates.
func (c *Client) Withdrawal(ctx context.Context, id int64) (*Withdrawal, error) {
	var out Withdrawal
	path := fmt.Sprintf("/admin/wallet/withdrawal/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithdrawalsForUser lists a user's requests, newest first.
func (c *Client) WithdrawalsForUser(ctx context.Context, userID int64) ([]Withdrawal, error) {
	var out struct {
		Requests []Withdrawal `json:"requests"`
	}
	path := fmt.Sprintf("/admin/users/%d/withdrawals", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// ApproveWithdrawal finalises a pending request.
func (c *Client) ApproveWithdrawal(ctx context.Context, id int64) (*Withdrawal, error) {
	var out Withdrawal
	path := fmt.Sprintf("/admin/wallet/withdrawal/%d/approve", id)
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectWithdrawal rejects a pending request with a reason. The held
// amount is credited back server-side.
func (c *Client) RejectWithdrawal(ctx context.Context, id int64, reason string) (*Withdrawal, error) {
	var out Withdrawal
	path := fmt.Sprintf("/admin/wallet/withdrawal/%d/reject", id)
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"reason": reason}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserHistory fetches a user's wallet ledger, newest first.
func (c *Client) UserHistory(ctx context.Context, userID int64) ([]LedgerEntry, error) {
	var out struct {
		History []LedgerEntry `json:"history"`
	}
	path := fmt.Sprintf("/admin/wallet/user/%d/history", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.History, nil
}

// DZDWallets fetches one page of the DZD wallet cohort.
func (c *Client) DZDWallets(ctx context.Context, page int) (*WalletPage, error) {
	var out WalletPage
	path := fmt.Sprintf("/admin/wallet/dzd?page=%d", page)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches the wallet dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*WalletStats, error) {
	var out WalletStats
	if err := c.do(ctx, http.MethodGet, "/admin/wallet/stats", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one API call: marshal body, set headers, send, decode the
// data/error envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, ok := c.auth.Token()
		if !ok {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// Server no longer honours the token; drop the session.
			c.auth.Clear()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
