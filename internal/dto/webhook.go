package dto

import (
	"encoding/json"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
)

// IngestWebhookRequest is the normalized inbound event body. The raw
// payload and its signature travel together so verification can happen
// later, off the request path.
type IngestWebhookRequest struct {
	EventID         string          `json:"eventID" binding:"required"`
	EventType       string          `json:"eventType" binding:"required"`
	Payload         json.RawMessage `json:"payload" binding:"required"`
	TransactionHint *string         `json:"transactionHint,omitempty"`
}

// WebhookEventResponse is the wire shape of one inbound event.
type WebhookEventResponse struct {
	ID            string     `json:"id"`
	EventID       string     `json:"eventID"`
	Provider      string     `json:"provider"`
	EventType     string     `json:"eventType"`
	Status        string     `json:"status"`
	TransactionID *string    `json:"transactionID,omitempty"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	RetryCount    int        `json:"retryCount"`
	ErrorMessage  *string    `json:"errorMessage,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	// Duplicate is set when the provider redelivered an already-known
	// event; the HTTP layer still answers success.
	Duplicate bool `json:"duplicate,omitempty"`
}

// ToWebhookEventResponse converts a domain event to its response shape.
func ToWebhookEventResponse(ev domain.WebhookEvent, duplicate bool) WebhookEventResponse {
	return WebhookEventResponse{
		ID:            ev.ID,
		EventID:       ev.EventID,
		Provider:      ev.Provider,
		EventType:     ev.EventType,
		Status:        string(ev.Status),
		TransactionID: ev.TransactionID,
		ProcessedAt:   ev.ProcessedAt,
		RetryCount:    ev.RetryCount,
		ErrorMessage:  ev.ErrorMessage,
		CreatedAt:     ev.CreatedAt,
		Duplicate:     duplicate,
	}
}
