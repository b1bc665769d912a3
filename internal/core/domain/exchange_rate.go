package domain

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// ExchangeRate is one time-versioned rate row for a currency pair. The row
// with ValidUntil == nil is the "current" rate; at most one such row may
// exist per pair at any instant. Historical rows are retained forever.
type ExchangeRate struct {
	ID           string      `json:"id"`
	FromCurrency string      `json:"fromCurrency"`
	ToCurrency   string      `json:"toCurrency"`
	Rate         money.Money `json:"rate"`
	Spread       money.Money `json:"spread"`
	Source       string      `json:"source"`
	ValidFrom    time.Time   `json:"validFrom"`
	ValidUntil   *time.Time  `json:"validUntil,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Pair renders the conventional FROM/TO pair label.
func (r ExchangeRate) Pair() string {
	return r.FromCurrency + "/" + r.ToCurrency
}

// IsOpen reports whether this row is the open (no expiry recorded) rate.
func (r ExchangeRate) IsOpen() bool {
	return r.ValidUntil == nil
}

// EffectiveAt reports whether the row was in force at the given instant.
func (r ExchangeRate) EffectiveAt(at time.Time) bool {
	if at.Before(r.ValidFrom) {
		return false
	}
	return r.ValidUntil == nil || at.Before(*r.ValidUntil)
}

// AfriConversion is an immutable audit record appended every time a
// conversion is realized inside a transaction. Rows are never updated or
// deleted.
type AfriConversion struct {
	ID               string      `json:"id"`
	TransactionID    *string     `json:"transactionID,omitempty"`
	FromCurrency     string      `json:"fromCurrency"`
	ToCurrency       string      `json:"toCurrency"`
	FromAmount       money.Money `json:"fromAmount"`
	ToAmount         money.Money `json:"toAmount"`
	ExchangeRateUsed money.Money `json:"exchangeRateUsed"`
	CreatedAt        time.Time   `json:"createdAt"`
}
