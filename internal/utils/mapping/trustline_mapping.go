package mapping

import (
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/models"
)

// ToModelTrustlineOperation converts a domain TrustlineOperation to its model representation.
func ToModelTrustlineOperation(d domain.TrustlineOperation) models.TrustlineOperation {
	return models.TrustlineOperation{
		ID:            d.ID,
		WalletAddress: d.WalletAddress,
		ChainTxHash:   d.ChainTxHash,
		Status:        string(d.Status),
		ErrorMessage:  d.ErrorMessage,
		RetryCount:    d.RetryCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainTrustlineOperation converts a model TrustlineOperation to its domain representation.
func ToDomainTrustlineOperation(m models.TrustlineOperation) domain.TrustlineOperation {
	return domain.TrustlineOperation{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		ChainTxHash:   m.ChainTxHash,
		Status:        domain.TrustlineStatus(m.Status),
		ErrorMessage:  m.ErrorMessage,
		RetryCount:    m.RetryCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainWallet converts a model Wallet to its domain representation.
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		Address:          m.Address,
		HasAfriTrustline: m.HasAfriTrustline,
		AfriBalance:      m.AfriBalance,
		LastBalanceCheck: m.LastBalanceCheck,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
