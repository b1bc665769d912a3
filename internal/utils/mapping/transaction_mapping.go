package mapping

import (
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to its model representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:               d.ID,
		WalletAddress:    d.WalletAddress,
		Type:             string(d.Type),
		FromCurrency:     d.FromCurrency,
		ToCurrency:       d.ToCurrency,
		FromAmount:       d.FromAmount,
		ToAmount:         d.ToAmount,
		AfriAmount:       d.AfriAmount,
		FeeAmount:        d.FeeAmount,
		Status:           string(d.Status),
		PaymentProvider:  d.PaymentProvider,
		PaymentReference: d.PaymentReference,
		BlockchainTxHash: d.BlockchainTxHash,
		ErrorMessage:     d.ErrorMessage,
		Metadata:         d.Metadata,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to its domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:               m.ID,
		WalletAddress:    m.WalletAddress,
		Type:             domain.TransactionType(m.Type),
		FromCurrency:     m.FromCurrency,
		ToCurrency:       m.ToCurrency,
		FromAmount:       m.FromAmount,
		ToAmount:         m.ToAmount,
		AfriAmount:       m.AfriAmount,
		FeeAmount:        m.FeeAmount,
		Status:           domain.TransactionStatus(m.Status),
		PaymentProvider:  m.PaymentProvider,
		PaymentReference: m.PaymentReference,
		BlockchainTxHash: m.BlockchainTxHash,
		ErrorMessage:     m.ErrorMessage,
		Metadata:         m.Metadata,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToModelBillPaymentDetail converts a domain BillPaymentDetail to its model representation.
func ToModelBillPaymentDetail(d domain.BillPaymentDetail) models.BillPaymentDetail {
	return models.BillPaymentDetail{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		BillerCode:    d.BillerCode,
		CustomerRef:   d.CustomerRef,
		BillerName:    d.BillerName,
		Amount:        d.Amount,
		Currency:      d.Currency,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainBillPaymentDetail converts a model BillPaymentDetail to its domain representation.
func ToDomainBillPaymentDetail(m models.BillPaymentDetail) domain.BillPaymentDetail {
	return domain.BillPaymentDetail{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		BillerCode:    m.BillerCode,
		CustomerRef:   m.CustomerRef,
		BillerName:    m.BillerName,
		Amount:        m.Amount,
		Currency:      m.Currency,
		CreatedAt:     m.CreatedAt,
	}
}
