package ports

import (
	"context"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// RepositoryProvider groups the persistence ports handed to the service
// container.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepository
	ConversionRepo   ConversionRepository
	FeeRepo          FeeRepository
	TransactionRepo  TransactionRepository
	TrustlineRepo    TrustlineRepository
	WalletRepo       WalletRepository
	WebhookRepo      WebhookRepository
}

// TransactionUpdate carries the columns a status transition is allowed to
// set alongside the new status. Nil fields are left untouched.
type TransactionUpdate struct {
	PaymentProvider  *string
	PaymentReference *string
	BlockchainTxHash *string
	ErrorMessage     *string
	ToAmount         *money.Money
	AfriAmount       *money.Money
}

// ExchangeRateRepository persists time-versioned currency-pair rates.
type ExchangeRateRepository interface {
	// SetRate closes any open row for the pair and inserts the new row in
	// one atomic unit. Concurrent callers for the same pair serialize.
	SetRate(ctx context.Context, rate domain.ExchangeRate) error
	// FindCurrentRate returns the rate in effect now for the pair, or
	// apperrors.ErrNotFound when none is. Observing more than one open row
	// surfaces apperrors.ErrIntegrityViolation.
	FindCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error)
	FindStaleRates(ctx context.Context, olderThan time.Time) ([]domain.ExchangeRate, error)
}

// ConversionRepository appends immutable conversion audit rows.
type ConversionRepository interface {
	SaveConversion(ctx context.Context, conv domain.AfriConversion) error
	FindConversionsByTransaction(ctx context.Context, transactionID string) ([]domain.AfriConversion, error)
}

// FeeRepository persists tiered fee rules.
type FeeRepository interface {
	SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error
	// FindActiveRules returns the active rules for the type/currency that
	// were effective at the given instant; amount and country filtering
	// happen in the service.
	FindActiveRules(ctx context.Context, txType domain.TransactionType, currency string, at time.Time) ([]domain.FeeStructure, error)
}

// TransactionRepository owns transaction rows and their guarded transitions.
type TransactionRepository interface {
	// SaveTransaction inserts the transaction, its realized conversion
	// audit row, and, when present, its
	// bill-payment detail row in one database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, conv *domain.AfriConversion, bill *domain.BillPaymentDetail) error
	FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	FindTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error)
	FindBillPaymentByTransaction(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error)
	// TransitionStatus applies a single guarded read-modify-write: the row
	// moves to `to` only if its current status is one of `from`. A row in
	// any other state yields apperrors.ErrInvalidTransition; a missing row
	// yields apperrors.ErrNotFound.
	TransitionStatus(ctx context.Context, id string, from []domain.TransactionStatus, to domain.TransactionStatus, update TransactionUpdate) (*domain.Transaction, error)
}

// TrustlineRepository owns trustline operations. The pending-state partial
// unique index makes InsertPendingOperation the concurrency gate.
type TrustlineRepository interface {
	// InsertPendingOperation inserts a pending row; a pending row already
	// existing for the wallet surfaces apperrors.ErrDuplicate.
	InsertPendingOperation(ctx context.Context, op domain.TrustlineOperation) error
	FindOperationByID(ctx context.Context, id string) (*domain.TrustlineOperation, error)
	FindLatestByWallet(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error)
	CountPendingByWallet(ctx context.Context, walletAddress string) (int, error)
	// ResolveOperation moves pending -> confirmed|failed under the same
	// guarded-transition contract as the transaction ledger.
	ResolveOperation(ctx context.Context, id string, status domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error)
	// IncrementRetry bumps the retry counter of a still-pending operation
	// and returns the new count.
	IncrementRetry(ctx context.Context, id string) (int, error)
}

// WalletRepository tracks per-wallet flags and the cached balance.
type WalletRepository interface {
	EnsureWallet(ctx context.Context, address string) error
	FindWallet(ctx context.Context, address string) (*domain.Wallet, error)
	SetTrustlineFlag(ctx context.Context, address string, hasTrustline bool) error
	UpdateCachedBalance(ctx context.Context, address string, balance money.Money) error
}

// WebhookRepository owns inbound events and outbound delivery rows.
type WebhookRepository interface {
	// InsertEvent inserts a new event; a (provider, event_id) collision
	// surfaces apperrors.ErrDuplicate.
	InsertEvent(ctx context.Context, ev domain.WebhookEvent) error
	FindEventByID(ctx context.Context, id string) (*domain.WebhookEvent, error)
	FindEventByProviderEventID(ctx context.Context, provider, eventID string) (*domain.WebhookEvent, error)
	MarkEventProcessing(ctx context.Context, id string) error
	MarkEventCompleted(ctx context.Context, id string, transactionID *string, processedAt time.Time) error
	// MarkEventFailed records the error, increments retry_count and returns
	// the new count.
	MarkEventFailed(ctx context.Context, id string, errorMessage string) (int, error)
	FindRetryableEvents(ctx context.Context, maxRetries, limit int) ([]domain.WebhookEvent, error)

	InsertDelivery(ctx context.Context, d domain.WebhookDelivery) error
	FindRetryableDeliveries(ctx context.Context, maxRetries, limit int) ([]domain.WebhookDelivery, error)
	// RecordDeliveryAttempt stores the outcome of one delivery attempt and
	// increments retry_count on failure.
	RecordDeliveryAttempt(ctx context.Context, id string, status domain.DeliveryStatus, responseCode *int, responseBody *string) error
}
