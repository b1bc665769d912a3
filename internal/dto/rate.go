package dto

import (
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// SetRateRequest publishes a new current rate for a currency pair.
type SetRateRequest struct {
	FromCurrency string      `json:"fromCurrency" binding:"required,len=3|len=4"`
	ToCurrency   string      `json:"toCurrency" binding:"required,len=3|len=4"`
	Rate         money.Money `json:"rate" binding:"required"`
	Spread       money.Money `json:"spread"`
	Source       string      `json:"source" binding:"required"`
	// TTLSeconds zero means the rate stays open until replaced.
	TTLSeconds int64 `json:"ttlSeconds" binding:"gte=0"`
}

// ExchangeRateResponse is the wire shape of one rate row.
type ExchangeRateResponse struct {
	ID           string      `json:"id"`
	FromCurrency string      `json:"fromCurrency"`
	ToCurrency   string      `json:"toCurrency"`
	Rate         money.Money `json:"rate"`
	Spread       money.Money `json:"spread"`
	Source       string      `json:"source"`
	ValidFrom    time.Time   `json:"validFrom"`
	ValidUntil   *time.Time  `json:"validUntil,omitempty"`
}

// ConversionResponse is the wire shape of one realized conversion audit row.
type ConversionResponse struct {
	ID               string      `json:"id"`
	TransactionID    *string     `json:"transactionID,omitempty"`
	FromCurrency     string      `json:"fromCurrency"`
	ToCurrency       string      `json:"toCurrency"`
	FromAmount       money.Money `json:"fromAmount"`
	ToAmount         money.Money `json:"toAmount"`
	ExchangeRateUsed money.Money `json:"exchangeRateUsed"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// ToConversionResponse converts a domain conversion to its response shape.
func ToConversionResponse(c domain.AfriConversion) ConversionResponse {
	return ConversionResponse{
		ID:               c.ID,
		TransactionID:    c.TransactionID,
		FromCurrency:     c.FromCurrency,
		ToCurrency:       c.ToCurrency,
		FromAmount:       c.FromAmount,
		ToAmount:         c.ToAmount,
		ExchangeRateUsed: c.ExchangeRateUsed,
		CreatedAt:        c.CreatedAt,
	}
}

// ToExchangeRateResponse converts a domain rate to its response shape.
func ToExchangeRateResponse(r domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:           r.ID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
		Spread:       r.Spread,
		Source:       r.Source,
		ValidFrom:    r.ValidFrom,
		ValidUntil:   r.ValidUntil,
	}
}
