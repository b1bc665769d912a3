package dto

import (
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// CreateFeeStructureRequest registers a new tiered fee rule.
type CreateFeeStructureRequest struct {
	TransactionType string       `json:"transactionType" binding:"required,oneof=onramp offramp bill_payment"`
	MinAmount       money.Money  `json:"minAmount"`
	MaxAmount       *money.Money `json:"maxAmount,omitempty"`
	FeePercentage   money.Money  `json:"feePercentage"`
	FlatFeeAmount   money.Money  `json:"flatFeeAmount"`
	Currency        string       `json:"currency" binding:"required,len=3|len=4"`
	CountryCode     *string      `json:"countryCode,omitempty" binding:"omitempty,len=2"`
	EffectiveFrom   *time.Time   `json:"effectiveFrom,omitempty"`
	EffectiveUntil  *time.Time   `json:"effectiveUntil,omitempty"`
}

// ResolveFeeRequest asks for the fee breakdown a prospective transaction
// would incur.
type ResolveFeeRequest struct {
	TransactionType string      `json:"transactionType" binding:"required,oneof=onramp offramp bill_payment"`
	Currency        string      `json:"currency" binding:"required,len=3|len=4"`
	CountryCode     *string     `json:"countryCode,omitempty" binding:"omitempty,len=2"`
	Amount          money.Money `json:"amount" binding:"required"`
}

// FeeBreakdownResponse is the wire shape of a resolved fee.
type FeeBreakdownResponse struct {
	RuleID        string      `json:"ruleID"`
	FeePercentage money.Money `json:"feePercentage"`
	PercentageFee money.Money `json:"percentageFee"`
	FlatFee       money.Money `json:"flatFee"`
	TotalFee      money.Money `json:"totalFee"`
}

// ToFeeBreakdownResponse converts a domain breakdown to its response shape.
func ToFeeBreakdownResponse(b domain.FeeBreakdown) FeeBreakdownResponse {
	return FeeBreakdownResponse{
		RuleID:        b.RuleID,
		FeePercentage: b.FeePercentage,
		PercentageFee: b.PercentageFee,
		FlatFee:       b.FlatFee,
		TotalFee:      b.TotalFee,
	}
}
