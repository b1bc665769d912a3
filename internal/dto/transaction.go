package dto

import (
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// BillPaymentDetails carries the biller fields required for a bill_payment
// transaction.
type BillPaymentDetails struct {
	BillerCode  string  `json:"billerCode" binding:"required"`
	CustomerRef string  `json:"customerRef" binding:"required"`
	BillerName  *string `json:"billerName,omitempty"`
}

// CreateTransactionRequest is an accepted quote turning into a transaction.
type CreateTransactionRequest struct {
	WalletAddress   string              `json:"walletAddress" binding:"required"`
	Type            string              `json:"type" binding:"required,oneof=onramp offramp bill_payment"`
	FromCurrency    string              `json:"fromCurrency" binding:"required,len=3|len=4"`
	ToCurrency      string              `json:"toCurrency" binding:"required,len=3|len=4"`
	FromAmount      money.Money         `json:"fromAmount" binding:"required"`
	CountryCode     *string             `json:"countryCode,omitempty" binding:"omitempty,len=2"`
	PaymentProvider *string             `json:"paymentProvider,omitempty"`
	Metadata        map[string]any      `json:"metadata,omitempty"`
	BillPayment     *BillPaymentDetails `json:"billPayment,omitempty"`
}

// ProcessingDetails carries the references recorded when a transaction's
// fiat or on-chain leg is submitted.
type ProcessingDetails struct {
	PaymentProvider  *string `json:"paymentProvider,omitempty"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	BlockchainTxHash *string `json:"blockchainTxHash,omitempty"`
}

// SettlementDetails carries the final settled values recorded on completion.
type SettlementDetails struct {
	ToAmount         *money.Money `json:"toAmount,omitempty"`
	AfriAmount       *money.Money `json:"afriAmount,omitempty"`
	BlockchainTxHash *string      `json:"blockchainTxHash,omitempty"`
}

// TransactionResponse is the wire shape of one transaction.
type TransactionResponse struct {
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
	PaymentProvider  *string        `json:"paymentProvider,omitempty"`
	PaymentReference *string        `json:"paymentReference,omitempty"`
	BlockchainTxHash *string        `json:"blockchainTxHash,omitempty"`
	ErrorMessage     *string        `json:"errorMessage,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// BillPaymentDetailResponse is the wire shape of a stored bill payment row.
type BillPaymentDetailResponse struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transactionID"`
	BillerCode    string      `json:"billerCode"`
	CustomerRef   string      `json:"customerRef"`
	BillerName    *string     `json:"billerName,omitempty"`
	Amount        money.Money `json:"amount"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ToBillPaymentDetailResponse converts a domain bill payment detail to its
// response shape.
func ToBillPaymentDetailResponse(b domain.BillPaymentDetail) BillPaymentDetailResponse {
	return BillPaymentDetailResponse{
		ID:            b.ID,
		TransactionID: b.TransactionID,
		BillerCode:    b.BillerCode,
		CustomerRef:   b.CustomerRef,
		BillerName:    b.BillerName,
		Amount:        b.Amount,
		Currency:      b.Currency,
		CreatedAt:     b.CreatedAt,
	}
}

// ToTransactionResponse converts a domain transaction to its response shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		WalletAddress:    t.WalletAddress,
		Type:             string(t.Type),
		FromCurrency:     t.FromCurrency,
		ToCurrency:       t.ToCurrency,
		FromAmount:       t.FromAmount,
		ToAmount:         t.ToAmount,
		AfriAmount:       t.AfriAmount,
		FeeAmount:        t.FeeAmount,
		Status:           string(t.Status),
		PaymentProvider:  t.PaymentProvider,
		PaymentReference: t.PaymentReference,
		BlockchainTxHash: t.BlockchainTxHash,
		ErrorMessage:     t.ErrorMessage,
		Metadata:         t.Metadata,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
