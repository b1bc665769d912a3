package domain

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// FeeStructure is one tiered fee rule. Several rules may apply to the same
// transaction type and currency; selection prefers a country-specific rule
// over a global one, then the narrowest amount band.
type FeeStructure struct {
	ID              string          `json:"id"`
	TransactionType TransactionType `json:"transactionType"`
	MinAmount       money.Money     `json:"minAmount"`
	// MaxAmount nil means the band is unbounded above.
	MaxAmount     *money.Money `json:"maxAmount,omitempty"`
	FeePercentage money.Money  `json:"feePercentage"`
	FlatFeeAmount money.Money  `json:"flatFeeAmount"`
	Currency      string       `json:"currency"`
	// CountryCode nil means the rule is the global default.
	CountryCode    *string    `json:"countryCode,omitempty"`
	IsActive       bool       `json:"isActive"`
	EffectiveFrom  time.Time  `json:"effectiveFrom"`
	EffectiveUntil *time.Time `json:"effectiveUntil,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CoversAmount reports whether amount falls in [MinAmount, MaxAmount).
func (f FeeStructure) CoversAmount(amount money.Money) bool {
	if amount.LessThan(f.MinAmount) {
		return false
	}
	return f.MaxAmount == nil || amount.LessThan(*f.MaxAmount)
}

// EffectiveAt reports whether the rule was in force at the given instant.
func (f FeeStructure) EffectiveAt(at time.Time) bool {
	if at.Before(f.EffectiveFrom) {
		return false
	}
	return f.EffectiveUntil == nil || at.Before(*f.EffectiveUntil)
}

// BandWidth returns MaxAmount - MinAmount, or nil for an unbounded band.
// Unbounded bands sort after every bounded one during selection.
func (f FeeStructure) BandWidth() *money.Money {
	if f.MaxAmount == nil {
		return nil
	}
	// MaxAmount > MinAmount is a stored invariant, so Sub cannot underflow.
	w, err := f.MaxAmount.Sub(f.MinAmount)
	if err != nil {
		return nil
	}
	return &w
}

// FeeBreakdown is the resolved fee for one transaction.
type FeeBreakdown struct {
	RuleID        string      `json:"ruleID"`
	FeePercentage money.Money `json:"feePercentage"`
	PercentageFee money.Money `json:"percentageFee"`
	FlatFee       money.Money `json:"flatFee"`
	TotalFee      money.Money `json:"totalFee"`
}
