package domain

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// TransactionType is the money-movement operation a transaction records.
type TransactionType string

const (
	Onramp      TransactionType = "onramp"
	Offramp     TransactionType = "offramp"
	BillPayment TransactionType = "bill_payment"
)

// Valid reports whether the type is one of the known operations.
func (t TransactionType) Valid() bool {
	switch t {
	case Onramp, Offramp, BillPayment:
		return true
	}
	return false
}

// TransactionStatus is a state in the transaction lifecycle.
type TransactionStatus string

const (
	TxPending    TransactionStatus = "pending"
	TxProcessing TransactionStatus = "processing"
	TxCompleted  TransactionStatus = "completed"
	TxFailed     TransactionStatus = "failed"
)

// IsTerminal reports whether no further transition may leave this state.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxCompleted || s == TxFailed
}

// CanTransitionTo encodes the lifecycle state machine:
// pending -> processing -> completed, with failed reachable from pending
// or processing. Terminal states admit nothing.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case TxPending:
		return next == TxProcessing || next == TxFailed
	case TxProcessing:
		return next == TxCompleted || next == TxFailed
	}
	return false
}

// StatusesAllowing lists every state from which the lifecycle admits a
// transition to next. Repositories use it as the expected-status guard on
// conditional updates.
func StatusesAllowing(next TransactionStatus) []TransactionStatus {
	var from []TransactionStatus
	for _, s := range []TransactionStatus{TxPending, TxProcessing, TxCompleted, TxFailed} {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}

// Transaction is the single source of truth for money owed or received in
// one onramp/offramp/bill-payment operation. Rows are never deleted; the
// lifecycle ends in completed or failed.
type Transaction struct {
	ID               string            `json:"id"`
	WalletAddress    string            `json:"walletAddress"`
	Type             TransactionType   `json:"type"`
	FromCurrency     string            `json:"fromCurrency"`
	ToCurrency       string            `json:"toCurrency"`
	FromAmount       money.Money       `json:"fromAmount"`
	ToAmount         money.Money       `json:"toAmount"`
	AfriAmount       money.Money       `json:"afriAmount"`
	FeeAmount        money.Money       `json:"feeAmount"`
	Status           TransactionStatus `json:"status"`
	PaymentProvider  *string           `json:"paymentProvider,omitempty"`
	PaymentReference *string           `json:"paymentReference,omitempty"`
	BlockchainTxHash *string           `json:"blockchainTxHash,omitempty"`
	ErrorMessage     *string           `json:"errorMessage,omitempty"`
	// Metadata is an opaque attachment; the core stores it verbatim and
	// never interprets it.
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BillPaymentDetail is the zero-or-one detail row owned by a bill_payment
// transaction.
type BillPaymentDetail struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transactionID"`
	BillerCode    string      `json:"billerCode"`
	CustomerRef   string      `json:"customerRef"`
	BillerName    *string     `json:"billerName,omitempty"`
	Amount        money.Money `json:"amount"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
}
