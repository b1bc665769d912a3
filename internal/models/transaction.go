package models

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// Transaction mirrors one row of the transactions table. Rows are never
// physically deleted; audit keeps terminal rows forever.
type Transaction struct {
	ID               string         `json:"id"`
	WalletAddress    string         `json:"walletAddress"`
	Type             string         `json:"type"`
	FromCurrency     string         `json:"fromCurrency"`
	ToCurrency       string         `json:"toCurrency"`
	FromAmount       money.Money    `json:"fromAmount"`
	ToAmount         money.Money    `json:"toAmount"`
	AfriAmount       money.Money    `json:"afriAmount"`
	FeeAmount        money.Money    `json:"feeAmount"`
	Status           string         `json:"status"`
	PaymentProvider  *string        `json:"paymentProvider"`
	PaymentReference *string        `json:"paymentReference"`
	BlockchainTxHash *string        `json:"blockchainTxHash"`
	ErrorMessage     *string        `json:"errorMessage"`
	Metadata         map[string]any `json:"metadata"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// BillPaymentDetail mirrors one row of the bill_payments detail table.
type BillPaymentDetail struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transactionID"`
	BillerCode    string      `json:"billerCode"`
	CustomerRef   string      `json:"customerRef"`
	BillerName    *string     `json:"billerName"`
	Amount        money.Money `json:"amount"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
}
