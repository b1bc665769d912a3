package domain_test

import (
	"testing"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.TransactionStatus
		to   domain.TransactionStatus
		want bool
	}{
		{"pending to processing", domain.TxPending, domain.TxProcessing, true},
		{"pending to failed", domain.TxPending, domain.TxFailed, true},
		{"pending to completed skips processing", domain.TxPending, domain.TxCompleted, false},
		{"processing to completed", domain.TxProcessing, domain.TxCompleted, true},
		{"processing to failed", domain.TxProcessing, domain.TxFailed, true},
		{"processing back to pending", domain.TxProcessing, domain.TxPending, false},
		{"completed is terminal", domain.TxCompleted, domain.TxProcessing, false},
		{"completed cannot fail", domain.TxCompleted, domain.TxFailed, false},
		{"failed is terminal", domain.TxFailed, domain.TxPending, false},
		{"failed cannot complete", domain.TxFailed, domain.TxCompleted, false},
		{"no self transition", domain.TxProcessing, domain.TxProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusesAllowing(t *testing.T) {
	assert.Equal(t,
		[]domain.TransactionStatus{domain.TxPending},
		domain.StatusesAllowing(domain.TxProcessing))
	assert.Equal(t,
		[]domain.TransactionStatus{domain.TxProcessing},
		domain.StatusesAllowing(domain.TxCompleted))
	assert.Equal(t,
		[]domain.TransactionStatus{domain.TxPending, domain.TxProcessing},
		domain.StatusesAllowing(domain.TxFailed))
	assert.Empty(t, domain.StatusesAllowing(domain.TxPending))
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.TxPending.IsTerminal())
	assert.False(t, domain.TxProcessing.IsTerminal())
	assert.True(t, domain.TxCompleted.IsTerminal())
	assert.True(t, domain.TxFailed.IsTerminal())
}

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, domain.Onramp.Valid())
	assert.True(t, domain.Offramp.Valid())
	assert.True(t, domain.BillPayment.Valid())
	assert.False(t, domain.TransactionType("refund").Valid())
}
