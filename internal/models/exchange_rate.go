package models

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// ExchangeRate mirrors one row of the exchange_rates table. A partial
// unique index on (from_currency, to_currency) WHERE valid_until IS NULL
// enforces the single-open-row invariant.
type ExchangeRate struct {
	ID           string      `json:"id"`
	FromCurrency string      `json:"fromCurrency"`
	ToCurrency   string      `json:"toCurrency"`
	Rate         money.Money `json:"rate"`
	Spread       money.Money `json:"spread"`
	Source       string      `json:"source"`
	ValidFrom    time.Time   `json:"validFrom"`
	ValidUntil   *time.Time  `json:"validUntil"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AfriConversion mirrors one row of the append-only afri_conversions audit
// table.
type AfriConversion struct {
	ID               string      `json:"id"`
	TransactionID    *string     `json:"transactionID"`
	FromCurrency     string      `json:"fromCurrency"`
	ToCurrency       string      `json:"toCurrency"`
	FromAmount       money.Money `json:"fromAmount"`
	ToAmount         money.Money `json:"toAmount"`
	ExchangeRateUsed money.Money `json:"exchangeRateUsed"`
	CreatedAt        time.Time   `json:"createdAt"`
}
