package services_test

import (
	"context"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SetRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindStaleRates(ctx context.Context, olderThan time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock ConversionRepository ---
type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) SaveConversion(ctx context.Context, conv domain.AfriConversion) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversionRepository) FindConversionsByTransaction(ctx context.Context, transactionID string) ([]domain.AfriConversion, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AfriConversion), args.Error(1)
}

// --- Mock FeeRepository ---
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) FindActiveRules(ctx context.Context, txType domain.TransactionType, currency string, at time.Time) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, txType, currency, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, conv *domain.AfriConversion, bill *domain.BillPaymentDetail) error {
	args := m.Called(ctx, txn, conv, bill)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, walletAddress, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindBillPaymentByTransaction(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillPaymentDetail), args.Error(1)
}

func (m *MockTransactionRepository) TransitionStatus(ctx context.Context, id string, from []domain.TransactionStatus, to domain.TransactionStatus, update ports.TransactionUpdate) (*domain.Transaction, error) {
	args := m.Called(ctx, id, from, to, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock TrustlineRepository ---
type MockTrustlineRepository struct {
	mock.Mock
}

func (m *MockTrustlineRepository) InsertPendingOperation(ctx context.Context, op domain.TrustlineOperation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockTrustlineRepository) FindOperationByID(ctx context.Context, id string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineRepository) FindLatestByWallet(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineRepository) CountPendingByWallet(ctx context.Context, walletAddress string) (int, error) {
	args := m.Called(ctx, walletAddress)
	return args.Int(0), args.Error(1)
}

func (m *MockTrustlineRepository) ResolveOperation(ctx context.Context, id string, status domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, id, status, chainTxHash, errorMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineRepository) IncrementRetry(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) EnsureWallet(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWallet(ctx context.Context, address string) (*domain.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SetTrustlineFlag(ctx context.Context, address string, hasTrustline bool) error {
	args := m.Called(ctx, address, hasTrustline)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateCachedBalance(ctx context.Context, address string, balance money.Money) error {
	args := m.Called(ctx, address, balance)
	return args.Error(0)
}

// --- Mock WebhookRepository ---
type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) InsertEvent(ctx context.Context, ev domain.WebhookEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockWebhookRepository) FindEventByID(ctx context.Context, id string) (*domain.WebhookEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) FindEventByProviderEventID(ctx context.Context, provider, eventID string) (*domain.WebhookEvent, error) {
	args := m.Called(ctx, provider, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) MarkEventProcessing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWebhookRepository) MarkEventCompleted(ctx context.Context, id string, transactionID *string, processedAt time.Time) error {
	args := m.Called(ctx, id, transactionID, processedAt)
	return args.Error(0)
}

func (m *MockWebhookRepository) MarkEventFailed(ctx context.Context, id string, errorMessage string) (int, error) {
	args := m.Called(ctx, id, errorMessage)
	return args.Int(0), args.Error(1)
}

func (m *MockWebhookRepository) FindRetryableEvents(ctx context.Context, maxRetries, limit int) ([]domain.WebhookEvent, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) InsertDelivery(ctx context.Context, d domain.WebhookDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockWebhookRepository) FindRetryableDeliveries(ctx context.Context, maxRetries, limit int) ([]domain.WebhookDelivery, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WebhookDelivery), args.Error(1)
}

func (m *MockWebhookRepository) RecordDeliveryAttempt(ctx context.Context, id string, status domain.DeliveryStatus, responseCode *int, responseBody *string) error {
	args := m.Called(ctx, id, status, responseCode, responseBody)
	return args.Error(0)
}

// --- Mock service facades (for services composed of other services) ---

type MockExchangeRateSvc struct {
	mock.Mock
}

func (m *MockExchangeRateSvc) SetRate(ctx context.Context, req dto.SetRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateSvc) GetCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateSvc) ListHistoricalRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateSvc) Quote(ctx context.Context, fromCurrency, toCurrency string, amount money.Money) (*domain.AfriConversion, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AfriConversion), args.Error(1)
}

func (m *MockExchangeRateSvc) Convert(ctx context.Context, fromCurrency, toCurrency string, amount money.Money, transactionID *string) (*domain.AfriConversion, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, amount, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AfriConversion), args.Error(1)
}

type MockFeeSvc struct {
	mock.Mock
}

func (m *MockFeeSvc) ResolveFee(ctx context.Context, txType domain.TransactionType, currency string, countryCode *string, amount money.Money, at time.Time) (*domain.FeeBreakdown, error) {
	args := m.Called(ctx, txType, currency, countryCode, amount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeBreakdown), args.Error(1)
}

func (m *MockFeeSvc) CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest) (*domain.FeeStructure, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

type MockTrustlineSvc struct {
	mock.Mock
}

func (m *MockTrustlineSvc) Begin(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineSvc) Resolve(ctx context.Context, operationID string, outcome domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, operationID, outcome, chainTxHash, errorMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineSvc) RecordRetry(ctx context.Context, operationID string) (*domain.TrustlineOperation, error) {
	args := m.Called(ctx, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrustlineOperation), args.Error(1)
}

func (m *MockTrustlineSvc) Status(ctx context.Context, walletAddress string) (bool, *domain.TrustlineOperation, error) {
	args := m.Called(ctx, walletAddress)
	var op *domain.TrustlineOperation
	if args.Get(1) != nil {
		op = args.Get(1).(*domain.TrustlineOperation)
	}
	return args.Bool(0), op, args.Error(2)
}

func (m *MockTrustlineSvc) HasConfirmedTrustline(ctx context.Context, walletAddress string) (bool, error) {
	args := m.Called(ctx, walletAddress)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrustlineSvc) RefreshBalance(ctx context.Context, walletAddress string, balance money.Money) (*domain.Wallet, error) {
	args := m.Called(ctx, walletAddress, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

type MockTransactionSvc struct {
	mock.Mock
}

func (m *MockTransactionSvc) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) ListTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, walletAddress, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) MarkProcessing(ctx context.Context, id string, details dto.ProcessingDetails) (*domain.Transaction, error) {
	args := m.Called(ctx, id, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) Complete(ctx context.Context, id string, settled dto.SettlementDetails) (*domain.Transaction, error) {
	args := m.Called(ctx, id, settled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) Fail(ctx context.Context, id, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionSvc) ListConversions(ctx context.Context, transactionID string) ([]domain.AfriConversion, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AfriConversion), args.Error(1)
}

func (m *MockTransactionSvc) GetBillPayment(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillPaymentDetail), args.Error(1)
}
