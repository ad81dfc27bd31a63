package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalRequest_IsPending(t *testing.T) {
	tests := []struct {
		name   string
		status WithdrawalStatus
		want   bool
	}{
		{"pending", WithdrawalStatusPending, true},
		{"approved", WithdrawalStatusApproved, false},
		{"rejected", WithdrawalStatusRejected, false},
		{"unknown", WithdrawalStatus("processing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &WithdrawalRequest{Status: tt.status}
			assert.Equal(t, tt.want, w.IsPending())
		})
	}
}

func TestWithdrawalRequest_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status WithdrawalStatus
		want   bool
	}{
		{"pending", WithdrawalStatusPending, false},
		{"approved", WithdrawalStatusApproved, true},
		{"rejected", WithdrawalStatusRejected, true},
		{"unknown", WithdrawalStatus("processing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &WithdrawalRequest{Status: tt.status}
			assert.Equal(t, tt.want, w.IsTerminal())
		})
	}
}

func TestAdmin_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		status AdminStatus
		want   bool
	}{
		{"active", AdminStatusActive, true},
		{"suspended", AdminStatusSuspended, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Admin{Status: tt.status}
			assert.Equal(t, tt.want, a.IsActive())
		})
	}
}

func TestLedgerEntry_LinksWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		kind        LedgerKind
		description string
		want        bool
	}{
		{"structured withdrawal kind", LedgerKindWithdrawal, "whatever", true},
		{"structured refund kind", LedgerKindWithdrawalRefund, "Demande de retrait rejetée", false},
		{"structured trip kind", LedgerKindTripPayment, "Paiement voyage Alger-Paris", false},
		{"legacy row with marker", "", "Demande de retrait #42", true},
		{"legacy row without marker", "", "Paiement voyage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &LedgerEntry{Kind: tt.kind, Description: tt.description}
			assert.Equal(t, tt.want, e.LinksWithdrawal())
		})
	}
}
