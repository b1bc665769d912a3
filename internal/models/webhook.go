package models

import (
	"encoding/json"
	"time"
)

// WebhookEvent mirrors one row of the webhook_events table. The unique
// index on (provider, event_id) is the idempotency key.
type WebhookEvent struct {
	ID            string          `json:"id"`
	EventID       string          `json:"eventID"`
	Provider      string          `json:"provider"`
	EventType     string          `json:"eventType"`
	Payload       json.RawMessage `json:"payload"`
	Signature     string          `json:"signature"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transactionID"`
	ProcessedAt   *time.Time      `json:"processedAt"`
	RetryCount    int             `json:"retryCount"`
	ErrorMessage  *string         `json:"errorMessage"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// WebhookDelivery mirrors one row of the webhook_deliveries fan-out table.
type WebhookDelivery struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventID"`
	URL          string    `json:"url"`
	Status       string    `json:"status"`
	ResponseCode *int      `json:"responseCode"`
	ResponseBody *string   `json:"responseBody"`
	RetryCount   int       `json:"retryCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
