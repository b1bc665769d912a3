package mapping

import (
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/models"
)

// ToModelWebhookEvent converts a domain WebhookEvent to its model representation.
func ToModelWebhookEvent(d domain.WebhookEvent) models.WebhookEvent {
	return models.WebhookEvent{
		ID:            d.ID,
		EventID:       d.EventID,
		Provider:      d.Provider,
		EventType:     d.EventType,
		Payload:       d.Payload,
		Signature:     d.Signature,
		Status:        string(d.Status),
		TransactionID: d.TransactionID,
		ProcessedAt:   d.ProcessedAt,
		RetryCount:    d.RetryCount,
		ErrorMessage:  d.ErrorMessage,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainWebhookEvent converts a model WebhookEvent to its domain representation.
func ToDomainWebhookEvent(m models.WebhookEvent) domain.WebhookEvent {
	return domain.WebhookEvent{
		ID:            m.ID,
		EventID:       m.EventID,
		Provider:      m.Provider,
		EventType:     m.EventType,
		Payload:       m.Payload,
		Signature:     m.Signature,
		Status:        domain.WebhookStatus(m.Status),
		TransactionID: m.TransactionID,
		ProcessedAt:   m.ProcessedAt,
		RetryCount:    m.RetryCount,
		ErrorMessage:  m.ErrorMessage,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelWebhookDelivery converts a domain WebhookDelivery to its model representation.
func ToModelWebhookDelivery(d domain.WebhookDelivery) models.WebhookDelivery {
	return models.WebhookDelivery{
		ID:           d.ID,
		EventID:      d.EventID,
		URL:          d.URL,
		Status:       string(d.Status),
		ResponseCode: d.ResponseCode,
		ResponseBody: d.ResponseBody,
		RetryCount:   d.RetryCount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainWebhookDelivery converts a model WebhookDelivery to its domain representation.
func ToDomainWebhookDelivery(m models.WebhookDelivery) domain.WebhookDelivery {
	return domain.WebhookDelivery{
		ID:           m.ID,
		EventID:      m.EventID,
		URL:          m.URL,
		Status:       domain.DeliveryStatus(m.Status),
		ResponseCode: m.ResponseCode,
		ResponseBody: m.ResponseBody,
		RetryCount:   m.RetryCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
