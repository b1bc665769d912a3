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
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/google/uuid"
)

// AfriCode is the asset code of the platform stablecoin. Conversion math
// multiplies on the local->AFRI leg and divides on the inverse leg.
const AfriCode = "AFRI"

// ExchangeRateService maintains the time-versioned rate table and realizes
// conversions against the current rate.
type ExchangeRateService struct {
	rateRepo ports.ExchangeRateRepository
	convRepo ports.ConversionRepository
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo ports.ExchangeRateRepository, convRepo ports.ConversionRepository) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo, convRepo: convRepo}
}

// SetRate publishes a new current rate for the pair. The repository closes
// any prior open row and inserts the new one atomically; a close/insert
// race lost to a concurrent publisher is retried once before giving up.
func (s *ExchangeRateService) SetRate(ctx context.Context, req dto.SetRateRequest) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(req.FromCurrency)
	toCurrency := strings.ToUpper(req.ToCurrency)

	if fromCurrency == toCurrency {
		return nil, apperrors.NewValidationError("from and to currencies cannot be the same")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("rate must be positive")
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ID:           uuid.NewString(),
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         req.Rate,
		Spread:       req.Spread,
		Source:       req.Source,
		ValidFrom:    now,
		CreatedAt:    now,
	}
	if req.TTLSeconds > 0 {
		until := now.Add(time.Duration(req.TTLSeconds) * time.Second)
		rate.ValidUntil = &until
	}

	err := s.rateRepo.SetRate(ctx, rate)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Another publisher inserted between our close and insert; rerun
		// so the later rate wins and exactly one open row survives.
		rate.ID = uuid.NewString()
		err = s.rateRepo.SetRate(ctx, rate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set rate for %s/%s: %w", fromCurrency, toCurrency, err)
	}
	return &rate, nil
}

// GetCurrentRate resolves the rate in effect now for the pair.
func (s *ExchangeRateService) GetCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	rate, err := s.rateRepo.FindCurrentRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrRateUnavailable, fromCurrency, toCurrency)
		}
		return nil, err
	}
	return rate, nil
}

// ListHistoricalRates returns retained rate rows, newest first.
func (s *ExchangeRateService) ListHistoricalRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.rateRepo.ListRates(ctx, strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), limit)
}

// Quote computes amount at the current rate without touching storage.
// Local->AFRI multiplies by the rate; AFRI->local divides.
func (s *ExchangeRateService) Quote(ctx context.Context, fromCurrency, toCurrency string, amount money.Money) (*domain.AfriConversion, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	var (
		rate *domain.ExchangeRate
		err  error
	)
	var toAmount money.Money
	switch {
	case toCurrency == AfriCode:
		rate, err = s.GetCurrentRate(ctx, fromCurrency, toCurrency)
		if err != nil {
			return nil, err
		}
		toAmount, err = amount.ApplyRate(rate.Rate)
	case fromCurrency == AfriCode:
		// The rate table is keyed local/AFRI; the AFRI leg uses the same
		// row divided.
		rate, err = s.GetCurrentRate(ctx, toCurrency, fromCurrency)
		if err != nil {
			return nil, err
		}
		toAmount, err = amount.InverseRate(rate.Rate)
	default:
		return nil, apperrors.NewValidationError("conversion must have AFRI on one leg")
	}
	if err != nil {
		return nil, fmt.Errorf("conversion math failed for %s->%s: %w", fromCurrency, toCurrency, err)
	}

	return &domain.AfriConversion{
		ID:               uuid.NewString(),
		FromCurrency:     fromCurrency,
		ToCurrency:       toCurrency,
		FromAmount:       amount,
		ToAmount:         toAmount,
		ExchangeRateUsed: rate.Rate,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Convert realizes amount at the current rate and appends the immutable
// audit record.
func (s *ExchangeRateService) Convert(ctx context.Context, fromCurrency, toCurrency string, amount money.Money, transactionID *string) (*domain.AfriConversion, error) {
	conv, err := s.Quote(ctx, fromCurrency, toCurrency, amount)
	if err != nil {
		return nil, err
	}
	conv.TransactionID = transactionID
	if err := s.convRepo.SaveConversion(ctx, *conv); err != nil {
		return nil, fmt.Errorf("failed to record conversion audit: %w", err)
	}
	return conv, nil
}
