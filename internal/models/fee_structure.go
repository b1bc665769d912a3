package models

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// FeeStructure mirrors one row of the fee_structures table.
type FeeStructure struct {
	ID              string       `json:"id"`
	TransactionType string       `json:"transactionType"`
	MinAmount       money.Money  `json:"minAmount"`
	MaxAmount       *money.Money `json:"maxAmount"`
	FeePercentage   money.Money  `json:"feePercentage"`
	FlatFeeAmount   money.Money  `json:"flatFeeAmount"`
	Currency        string       `json:"currency"`
	CountryCode     *string      `json:"countryCode"`
	IsActive        bool         `json:"isActive"`
	EffectiveFrom   time.Time    `json:"effectiveFrom"`
	EffectiveUntil  *time.Time   `json:"effectiveUntil"`
	CreatedAt       time.Time    `json:"createdAt"`
}
