package services

import (
	"context"
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

// FeeService resolves the applicable tiered fee for a transaction.
type FeeService struct {
	feeRepo ports.FeeRepository
}

var _ portssvc.FeeSvcFacade = (*FeeService)(nil)

// NewFeeService creates a new FeeService.
func NewFeeService(feeRepo ports.FeeRepository) *FeeService {
	return &FeeService{feeRepo: feeRepo}
}

// ResolveFee selects the fee rule for the type/currency/country/amount at
// the given instant. A country-specific rule beats the global default; ties
// go to the narrowest amount band. No match is an error, never a zero fee.
func (s *FeeService) ResolveFee(ctx context.Context, txType domain.TransactionType, currency string, countryCode *string, amount money.Money, at time.Time) (*domain.FeeBreakdown, error) {
	currency = strings.ToUpper(currency)

	rules, err := s.feeRepo.FindActiveRules(ctx, txType, currency, at)
	if err != nil {
		return nil, fmt.Errorf("failed to load fee rules for %s/%s: %w", txType, currency, err)
	}

	best := selectFeeRule(rules, countryCode, amount, at)
	if best == nil {
		return nil, fmt.Errorf("%w: type=%s currency=%s amount=%s", apperrors.ErrNoFeeRuleMatched, txType, currency, amount)
	}

	percentageFee := amount.Percent(best.FeePercentage)
	return &domain.FeeBreakdown{
		RuleID:        best.ID,
		FeePercentage: best.FeePercentage,
		PercentageFee: percentageFee,
		FlatFee:       best.FlatFeeAmount,
		TotalFee:      percentageFee.Add(best.FlatFeeAmount),
	}, nil
}

// selectFeeRule applies the deterministic selection order over candidate
// rules already filtered to the right type and currency.
func selectFeeRule(rules []domain.FeeStructure, countryCode *string, amount money.Money, at time.Time) *domain.FeeStructure {
	var best *domain.FeeStructure
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || !rule.EffectiveAt(at) || !rule.CoversAmount(amount) {
			continue
		}
		if rule.CountryCode != nil {
			if countryCode == nil || !strings.EqualFold(*rule.CountryCode, *countryCode) {
				continue
			}
		}
		if best == nil || feeRuleBeats(rule, best) {
			best = rule
		}
	}
	return best
}

// feeRuleBeats reports whether candidate wins over incumbent: country-
// specific first, then the narrowest bounded amount band.
func feeRuleBeats(candidate, incumbent *domain.FeeStructure) bool {
	candCountry := candidate.CountryCode != nil
	incCountry := incumbent.CountryCode != nil
	if candCountry != incCountry {
		return candCountry
	}

	candWidth := candidate.BandWidth()
	incWidth := incumbent.BandWidth()
	if (candWidth == nil) != (incWidth == nil) {
		// Unbounded bands are treated as the widest possible.
		return candWidth != nil
	}
	if candWidth != nil && incWidth != nil {
		return candWidth.LessThan(*incWidth)
	}
	return false
}

// CreateFeeStructure registers a new fee rule.
func (s *FeeService) CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest) (*domain.FeeStructure, error) {
	txType := domain.TransactionType(req.TransactionType)
	if !txType.Valid() {
		return nil, apperrors.NewValidationError("unknown transaction type " + req.TransactionType)
	}
	if req.MaxAmount != nil && !req.MinAmount.LessThan(*req.MaxAmount) {
		return nil, apperrors.NewValidationError("max_amount must be greater than min_amount")
	}

	now := time.Now().UTC()
	effectiveFrom := now
	if req.EffectiveFrom != nil {
		effectiveFrom = req.EffectiveFrom.UTC()
	}
	if req.EffectiveUntil != nil && !req.EffectiveUntil.After(effectiveFrom) {
		return nil, apperrors.NewValidationError("effective_until must be after effective_from")
	}

	var countryCode *string
	if req.CountryCode != nil {
		cc := strings.ToUpper(*req.CountryCode)
		countryCode = &cc
	}

	fee := domain.FeeStructure{
		ID:              uuid.NewString(),
		TransactionType: txType,
		MinAmount:       req.MinAmount,
		MaxAmount:       req.MaxAmount,
		FeePercentage:   req.FeePercentage,
		FlatFeeAmount:   req.FlatFeeAmount,
		Currency:        strings.ToUpper(req.Currency),
		CountryCode:     countryCode,
		IsActive:        true,
		EffectiveFrom:   effectiveFrom,
		EffectiveUntil:  req.EffectiveUntil,
		CreatedAt:       now,
	}
	if err := s.feeRepo.SaveFeeStructure(ctx, fee); err != nil {
		return nil, fmt.Errorf("failed to save fee structure: %w", err)
	}
	return &fee, nil
}
