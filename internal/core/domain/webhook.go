package domain

import (
	"encoding/json"
	"time"
)

// WebhookStatus is a state in inbound event processing.
type WebhookStatus string

const (
	WebhookPending    WebhookStatus = "pending"
	WebhookProcessing WebhookStatus = "processing"
	WebhookCompleted  WebhookStatus = "completed"
	WebhookFailed     WebhookStatus = "failed"
)

// DeliveryStatus is a state in outbound event delivery.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// WebhookEvent is one inbound provider notification. (Provider, EventID) is
// the idempotency key: a redelivery of the same provider event is detected
// at insert time and never reprocessed.
type WebhookEvent struct {
	ID        string `json:"id"`
	EventID   string `json:"eventID"`
	Provider  string `json:"provider"`
	EventType string `json:"eventType"`
	// Payload is stored verbatim; only provider adapters parse it.
	Payload       json.RawMessage `json:"payload"`
	Signature     string          `json:"signature"`
	Status        WebhookStatus   `json:"status"`
	TransactionID *string         `json:"transactionID,omitempty"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	RetryCount    int             `json:"retryCount"`
	ErrorMessage  *string         `json:"errorMessage,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// WebhookDelivery is one outbound delivery attempt record. A single event
// fans out to one delivery row per downstream consumer URL.
type WebhookDelivery struct {
	ID           string         `json:"id"`
	EventID      string         `json:"eventID"`
	URL          string         `json:"url"`
	Status       DeliveryStatus `json:"status"`
	ResponseCode *int           `json:"responseCode,omitempty"`
	ResponseBody *string        `json:"responseBody,omitempty"`
	RetryCount   int            `json:"retryCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// PaymentEvent is the normalized inbound notification handed over by the
// provider adapters at the system boundary.
type PaymentEvent struct {
	Provider        string          `json:"provider"`
	EventID         string          `json:"eventID"`
	EventType       string          `json:"eventType"`
	Payload         json.RawMessage `json:"payload"`
	Signature       string          `json:"signature"`
	TransactionHint *string         `json:"transactionHint,omitempty"`
}
