package services

import (
	"context"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// ExchangeRateSvcFacade is the rate resolver surface exposed to handlers
// and other services.
type ExchangeRateSvcFacade interface {
	SetRate(ctx context.Context, req dto.SetRateRequest) (*domain.ExchangeRate, error)
	GetCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)
	ListHistoricalRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)
	// Quote computes a conversion at the current rate without persisting
	// anything; callers that own a DB transaction store the row themselves.
	Quote(ctx context.Context, fromCurrency, toCurrency string, amount money.Money) (*domain.AfriConversion, error)
	// Convert realizes a conversion at the current rate and appends an
	// immutable audit record.
	Convert(ctx context.Context, fromCurrency, toCurrency string, amount money.Money, transactionID *string) (*domain.AfriConversion, error)
}

// FeeSvcFacade resolves and administers tiered fee rules.
type FeeSvcFacade interface {
	ResolveFee(ctx context.Context, txType domain.TransactionType, currency string, countryCode *string, amount money.Money, at time.Time) (*domain.FeeBreakdown, error)
	CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest) (*domain.FeeStructure, error)
}

// TransactionSvcFacade is the transaction ledger surface.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error)
	MarkProcessing(ctx context.Context, id string, details dto.ProcessingDetails) (*domain.Transaction, error)
	Complete(ctx context.Context, id string, settled dto.SettlementDetails) (*domain.Transaction, error)
	Fail(ctx context.Context, id, reason string) (*domain.Transaction, error)
	ListConversions(ctx context.Context, transactionID string) ([]domain.AfriConversion, error)
	GetBillPayment(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error)
}

// TrustlineSvcFacade guards trustline establishment per wallet.
type TrustlineSvcFacade interface {
	Begin(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error)
	Resolve(ctx context.Context, operationID string, outcome domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error)
	RecordRetry(ctx context.Context, operationID string) (*domain.TrustlineOperation, error)
	Status(ctx context.Context, walletAddress string) (hasTrustline bool, latest *domain.TrustlineOperation, err error)
	HasConfirmedTrustline(ctx context.Context, walletAddress string) (bool, error)
	// RefreshBalance records a freshly observed on-chain AFRI balance on
	// the wallet's cached row.
	RefreshBalance(ctx context.Context, walletAddress string, balance money.Money) (*domain.Wallet, error)
}

// ServiceContainer bundles every service facade for handler registration
// and worker wiring.
type ServiceContainer struct {
	ExchangeRate ExchangeRateSvcFacade
	Fee          FeeSvcFacade
	Transaction  TransactionSvcFacade
	Trustline    TrustlineSvcFacade
	Webhook      WebhookSvcFacade
}

// WebhookSvcFacade is the intake and dispatch surface for provider events.
type WebhookSvcFacade interface {
	// Ingest stores the event exactly once; a redelivery returns the stored
	// event together with apperrors.ErrDuplicate.
	Ingest(ctx context.Context, ev domain.PaymentEvent) (*domain.WebhookEvent, error)
	Process(ctx context.Context, eventID string) error
	// SweepRetryable reprocesses events still below the retry cap and
	// returns how many were attempted.
	SweepRetryable(ctx context.Context, limit int) (int, error)
	// DispatchPending posts undelivered fan-out rows downstream and
	// returns how many were attempted.
	DispatchPending(ctx context.Context, limit int) (int, error)
}
