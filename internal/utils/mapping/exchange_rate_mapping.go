package mapping

import (
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to its model representation.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ID:           d.ID,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		Rate:         d.Rate,
		Spread:       d.Spread,
		Source:       d.Source,
		ValidFrom:    d.ValidFrom,
		ValidUntil:   d.ValidUntil,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to its domain representation.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ID:           m.ID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		Spread:       m.Spread,
		Source:       m.Source,
		ValidFrom:    m.ValidFrom,
		ValidUntil:   m.ValidUntil,
		CreatedAt:    m.CreatedAt,
	}
}

// ToModelAfriConversion converts a domain AfriConversion to its model representation.
func ToModelAfriConversion(d domain.AfriConversion) models.AfriConversion {
	return models.AfriConversion{
		ID:               d.ID,
		TransactionID:    d.TransactionID,
		FromCurrency:     d.FromCurrency,
		ToCurrency:       d.ToCurrency,
		FromAmount:       d.FromAmount,
		ToAmount:         d.ToAmount,
		ExchangeRateUsed: d.ExchangeRateUsed,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainAfriConversion converts a model AfriConversion to its domain representation.
func ToDomainAfriConversion(m models.AfriConversion) domain.AfriConversion {
	return domain.AfriConversion{
		ID:               m.ID,
		TransactionID:    m.TransactionID,
		FromCurrency:     m.FromCurrency,
		ToCurrency:       m.ToCurrency,
		FromAmount:       m.FromAmount,
		ToAmount:         m.ToAmount,
		ExchangeRateUsed: m.ExchangeRateUsed,
		CreatedAt:        m.CreatedAt,
	}
}
