package mapping

import (
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/models"
)

// ToModelFeeStructure converts a domain FeeStructure to its model representation.
func ToModelFeeStructure(d domain.FeeStructure) models.FeeStructure {
	return models.FeeStructure{
		ID:              d.ID,
		TransactionType: string(d.TransactionType),
		MinAmount:       d.MinAmount,
		MaxAmount:       d.MaxAmount,
		FeePercentage:   d.FeePercentage,
		FlatFeeAmount:   d.FlatFeeAmount,
		Currency:        d.Currency,
		CountryCode:     d.CountryCode,
		IsActive:        d.IsActive,
		EffectiveFrom:   d.EffectiveFrom,
		EffectiveUntil:  d.EffectiveUntil,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainFeeStructure converts a model FeeStructure to its domain representation.
func ToDomainFeeStructure(m models.FeeStructure) domain.FeeStructure {
	return domain.FeeStructure{
		ID:              m.ID,
		TransactionType: domain.TransactionType(m.TransactionType),
		MinAmount:       m.MinAmount,
		MaxAmount:       m.MaxAmount,
		FeePercentage:   m.FeePercentage,
		FlatFeeAmount:   m.FlatFeeAmount,
		Currency:        m.Currency,
		CountryCode:     m.CountryCode,
		IsActive:        m.IsActive,
		EffectiveFrom:   m.EffectiveFrom,
		EffectiveUntil:  m.EffectiveUntil,
		CreatedAt:       m.CreatedAt,
	}
}
