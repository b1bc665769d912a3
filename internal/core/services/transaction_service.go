package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/google/uuid"
)

// TransactionService is the transaction ledger: it creates transactions
// from accepted quotes and advances them through the lifecycle state
// machine. Every transition is a guarded read-modify-write in the store, so
// duplicate or out-of-order signals surface ErrInvalidTransition instead of
// corrupting state.
type TransactionService struct {
	txnRepo      ports.TransactionRepository
	walletRepo   ports.WalletRepository
	convRepo     ports.ConversionRepository
	rateSvc      portssvc.ExchangeRateSvcFacade
	feeSvc       portssvc.FeeSvcFacade
	trustlineSvc portssvc.TrustlineSvcFacade
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	convRepo ports.ConversionRepository,
	rateSvc portssvc.ExchangeRateSvcFacade,
	feeSvc portssvc.FeeSvcFacade,
	trustlineSvc portssvc.TrustlineSvcFacade,
) *TransactionService {
	return &TransactionService{
		txnRepo:      txnRepo,
		walletRepo:   walletRepo,
		convRepo:     convRepo,
		rateSvc:      rateSvc,
		feeSvc:       feeSvc,
		trustlineSvc: trustlineSvc,
	}
}

// CreateTransaction turns an accepted quote into a pending transaction.
// The fee is resolved on the source amount, the remainder is converted at
// the current rate, and the realized conversion lands in the audit trail.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txType := domain.TransactionType(req.Type)
	if !txType.Valid() {
		return nil, apperrors.NewValidationError("unknown transaction type " + req.Type)
	}
	if !req.FromAmount.IsPositive() {
		return nil, apperrors.NewValidationError("from_amount must be positive")
	}
	if txType == domain.BillPayment && req.BillPayment == nil {
		return nil, apperrors.NewValidationError("bill_payment transactions require biller details")
	}

	fromCurrency := strings.ToUpper(req.FromCurrency)
	toCurrency := strings.ToUpper(req.ToCurrency)
	if fromCurrency == toCurrency {
		return nil, apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	if err := s.walletRepo.EnsureWallet(ctx, req.WalletAddress); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet %s: %w", req.WalletAddress, err)
	}

	now := time.Now().UTC()
	fee, err := s.feeSvc.ResolveFee(ctx, txType, fromCurrency, req.CountryCode, req.FromAmount, now)
	if err != nil {
		return nil, err
	}

	netAmount, err := req.FromAmount.Sub(fee.TotalFee)
	if err != nil {
		return nil, apperrors.NewValidationError("fee exceeds transaction amount")
	}

	txnID := uuid.NewString()
	conv, err := s.rateSvc.Quote(ctx, fromCurrency, toCurrency, netAmount)
	if err != nil {
		return nil, err
	}
	conv.TransactionID = &txnID

	afriAmount := conv.ToAmount
	if fromCurrency == AfriCode {
		afriAmount = conv.FromAmount
	}

	txn := domain.Transaction{
		ID:              txnID,
		WalletAddress:   req.WalletAddress,
		Type:            txType,
		FromCurrency:    fromCurrency,
		ToCurrency:      toCurrency,
		FromAmount:      req.FromAmount,
		ToAmount:        conv.ToAmount,
		AfriAmount:      afriAmount,
		FeeAmount:       fee.TotalFee,
		Status:          domain.TxPending,
		PaymentProvider: req.PaymentProvider,
		Metadata:        req.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var bill *domain.BillPaymentDetail
	if txType == domain.BillPayment {
		bill = &domain.BillPaymentDetail{
			ID:            uuid.NewString(),
			TransactionID: txnID,
			BillerCode:    req.BillPayment.BillerCode,
			CustomerRef:   req.BillPayment.CustomerRef,
			BillerName:    req.BillPayment.BillerName,
			Amount:        req.FromAmount,
			Currency:      fromCurrency,
			CreatedAt:     now,
		}
	}

	// The audit row commits in the same DB transaction as the insert, so a
	// failed save leaves no conversion correlated to a phantom ID.
	if err := s.txnRepo.SaveTransaction(ctx, txn, conv, bill); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, id)
}

// ListTransactionsByWallet returns a wallet's transactions, newest first.
func (s *TransactionService) ListTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.FindTransactionsByWallet(ctx, walletAddress, limit, offset)
}

// MarkProcessing records that the fiat or on-chain leg has been submitted.
func (s *TransactionService) MarkProcessing(ctx context.Context, id string, details dto.ProcessingDetails) (*domain.Transaction, error) {
	return s.txnRepo.TransitionStatus(ctx, id,
		domain.StatusesAllowing(domain.TxProcessing),
		domain.TxProcessing,
		ports.TransactionUpdate{
			PaymentProvider:  details.PaymentProvider,
			PaymentReference: details.PaymentReference,
			BlockchainTxHash: details.BlockchainTxHash,
		},
	)
}

// Complete settles a processing transaction. An onramp delivering AFRI
// requires the wallet's trustline to be confirmed first; the guard is
// consulted, never driven, from here.
func (s *TransactionService) Complete(ctx context.Context, id string, settled dto.SettlementDetails) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if txn.ToCurrency == AfriCode {
		hasTrustline, err := s.trustlineSvc.HasConfirmedTrustline(ctx, txn.WalletAddress)
		if err != nil {
			return nil, err
		}
		if !hasTrustline {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrTrustlineRequired, txn.WalletAddress)
		}
	}

	return s.txnRepo.TransitionStatus(ctx, id,
		domain.StatusesAllowing(domain.TxCompleted),
		domain.TxCompleted,
		ports.TransactionUpdate{
			ToAmount:         settled.ToAmount,
			AfriAmount:       settled.AfriAmount,
			BlockchainTxHash: settled.BlockchainTxHash,
		},
	)
}

// Fail terminates a pending or processing transaction. Failure is final: a
// user retry is a new transaction, never a mutation of this one.
func (s *TransactionService) Fail(ctx context.Context, id, reason string) (*domain.Transaction, error) {
	if reason == "" {
		reason = "unspecified failure"
	}
	return s.txnRepo.TransitionStatus(ctx, id,
		domain.StatusesAllowing(domain.TxFailed),
		domain.TxFailed,
		ports.TransactionUpdate{ErrorMessage: &reason},
	)
}

// ListConversions returns the append-only conversion audit rows realized
// for a transaction, oldest first.
func (s *TransactionService) ListConversions(ctx context.Context, transactionID string) ([]domain.AfriConversion, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.convRepo.FindConversionsByTransaction(ctx, transactionID)
}

// GetBillPayment returns the biller detail row attached to a bill_payment
// transaction.
func (s *TransactionService) GetBillPayment(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Type != domain.BillPayment {
		return nil, apperrors.NewValidationError("transaction " + transactionID + " is not a bill payment")
	}
	return s.txnRepo.FindBillPaymentByTransaction(ctx, transactionID)
}

// IsInvalidTransition reports whether err is the idempotent-rejection
// signal from a guarded transition.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidTransition)
}
