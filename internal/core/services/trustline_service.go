package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/google/uuid"
)

// trustlineMaxRetries caps chain-submission retries per operation. Hitting
// the cap resolves the operation failed; the caller may begin a fresh one.
const trustlineMaxRetries = 5

// TrustlineService enforces at-most-one in-flight trustline establishment
// per wallet. The pending-state uniqueness constraint in the store is the
// gate; a racing second caller loses the insert and gets AlreadyPending.
type TrustlineService struct {
	trustlineRepo ports.TrustlineRepository
	walletRepo    ports.WalletRepository
}

var _ portssvc.TrustlineSvcFacade = (*TrustlineService)(nil)

// NewTrustlineService creates a new TrustlineService.
func NewTrustlineService(trustlineRepo ports.TrustlineRepository, walletRepo ports.WalletRepository) *TrustlineService {
	return &TrustlineService{trustlineRepo: trustlineRepo, walletRepo: walletRepo}
}

// Begin atomically inserts a pending operation for the wallet. The insert
// itself is the concurrency gate: exactly one concurrent caller succeeds,
// the rest receive ErrAlreadyPending.
func (s *TrustlineService) Begin(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error) {
	if walletAddress == "" {
		return nil, apperrors.NewValidationError("wallet address is required")
	}
	if err := s.walletRepo.EnsureWallet(ctx, walletAddress); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet %s: %w", walletAddress, err)
	}

	now := time.Now().UTC()
	op := domain.TrustlineOperation{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		Status:        domain.TrustlinePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.trustlineRepo.InsertPendingOperation(ctx, op); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrAlreadyPending, walletAddress)
		}
		return nil, fmt.Errorf("failed to begin trustline operation: %w", err)
	}
	return &op, nil
}

// Resolve moves a pending operation to confirmed or failed. Confirmation
// flips the wallet's trustline flag; failure frees the wallet for a new
// Begin.
func (s *TrustlineService) Resolve(ctx context.Context, operationID string, outcome domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error) {
	if !outcome.IsTerminal() {
		return nil, apperrors.NewValidationError("outcome must be confirmed or failed")
	}

	op, err := s.trustlineRepo.ResolveOperation(ctx, operationID, outcome, chainTxHash, errorMessage)
	if err != nil {
		return nil, err
	}

	if outcome == domain.TrustlineConfirmed {
		if err := s.walletRepo.SetTrustlineFlag(ctx, op.WalletAddress, true); err != nil {
			return nil, fmt.Errorf("failed to set trustline flag for %s: %w", op.WalletAddress, err)
		}
	}
	return op, nil
}

// RecordRetry bumps the retry counter of a still-pending operation. A
// counter at the cap resolves the operation failed instead; no new row is
// created while the operation is pending.
func (s *TrustlineService) RecordRetry(ctx context.Context, operationID string) (*domain.TrustlineOperation, error) {
	count, err := s.trustlineRepo.IncrementRetry(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if count >= trustlineMaxRetries {
		msg := fmt.Sprintf("chain submission retries exhausted after %d attempts", count)
		op, err := s.trustlineRepo.ResolveOperation(ctx, operationID, domain.TrustlineFailed, nil, &msg)
		if err != nil {
			return nil, err
		}
		return op, fmt.Errorf("%w: operation %s", apperrors.ErrRetryExhausted, operationID)
	}
	return s.trustlineRepo.FindOperationByID(ctx, operationID)
}

// Status reports the wallet's trustline flag and its most recent operation.
func (s *TrustlineService) Status(ctx context.Context, walletAddress string) (bool, *domain.TrustlineOperation, error) {
	wallet, err := s.walletRepo.FindWallet(ctx, walletAddress)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, nil, err
	}

	latest, err := s.trustlineRepo.FindLatestByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			latest = nil
		} else {
			return false, nil, err
		}
	}

	hasTrustline := wallet != nil && wallet.HasAfriTrustline
	return hasTrustline, latest, nil
}

// HasConfirmedTrustline reports whether the wallet can hold AFRI. It also
// cross-checks the pending-row invariant; observing more than one pending
// operation is a bug surfaced as IntegrityViolation, never healed here.
func (s *TrustlineService) HasConfirmedTrustline(ctx context.Context, walletAddress string) (bool, error) {
	pending, err := s.trustlineRepo.CountPendingByWallet(ctx, walletAddress)
	if err != nil {
		return false, err
	}
	if pending > 1 {
		return false, fmt.Errorf("%w: wallet %s has %d pending trustline operations", apperrors.ErrIntegrityViolation, walletAddress, pending)
	}

	wallet, err := s.walletRepo.FindWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return wallet.HasAfriTrustline, nil
}

// RefreshBalance stores an externally observed AFRI balance on the wallet
// row. The cache is advisory; the chain remains the source of truth.
func (s *TrustlineService) RefreshBalance(ctx context.Context, walletAddress string, balance money.Money) (*domain.Wallet, error) {
	if balance.IsNegative() {
		return nil, apperrors.NewValidationError("balance cannot be negative")
	}
	if err := s.walletRepo.EnsureWallet(ctx, walletAddress); err != nil {
		return nil, err
	}
	if err := s.walletRepo.UpdateCachedBalance(ctx, walletAddress, balance); err != nil {
		return nil, err
	}
	return s.walletRepo.FindWallet(ctx, walletAddress)
}
