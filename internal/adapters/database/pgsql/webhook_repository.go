package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/models"
	"github.com/afriramp/afri_ramp_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const webhookEventColumns = `
	webhook_event_id, event_id, provider, event_type, payload, signature,
	status, transaction_id, processed_at, retry_count, error_message, created_at`

const webhookDeliveryColumns = `
	delivery_id, webhook_event_id, url, status, response_code, response_body,
	retry_count, created_at, updated_at`

// PgxWebhookRepository implements ports.WebhookRepository using pgxpool.
// The unique index on (provider, event_id) is the idempotency key for
// inbound events.
type PgxWebhookRepository struct {
	pool *pgxpool.Pool
}

// NewWebhookRepository creates a new PgxWebhookRepository.
func NewWebhookRepository(pool *pgxpool.Pool) ports.WebhookRepository {
	return &PgxWebhookRepository{pool: pool}
}

// InsertEvent inserts a new inbound event; a redelivery collides with the
// idempotency index and surfaces ErrDuplicate.
func (r *PgxWebhookRepository) InsertEvent(ctx context.Context, ev domain.WebhookEvent) error {
	m := mapping.ToModelWebhookEvent(ev)
	query := `
		INSERT INTO webhook_events (` + webhookEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.EventID, m.Provider, m.EventType, m.Payload, m.Signature,
		m.Status, m.TransactionID, m.ProcessedAt, m.RetryCount, m.ErrorMessage, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("webhook event %s/%s: %w", m.Provider, m.EventID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert webhook event: %w", err)
	}
	return nil
}

// FindEventByID retrieves one event row by its internal ID.
func (r *PgxWebhookRepository) FindEventByID(ctx context.Context, id string) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events WHERE webhook_event_id = $1`
	return r.findEvent(ctx, query, id)
}

// FindEventByProviderEventID retrieves one event row by its idempotency key.
func (r *PgxWebhookRepository) FindEventByProviderEventID(ctx context.Context, provider, eventID string) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookEventColumns + ` FROM webhook_events WHERE provider = $1 AND event_id = $2`
	return r.findEvent(ctx, query, provider, eventID)
}

func (r *PgxWebhookRepository) findEvent(ctx context.Context, query string, args ...any) (*domain.WebhookEvent, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook event: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.WebhookEvent])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("webhook event not found")
		}
		return nil, fmt.Errorf("failed to scan webhook event: %w", err)
	}
	ev := mapping.ToDomainWebhookEvent(m)
	return &ev, nil
}

// MarkEventProcessing flags the event as in flight.
func (r *PgxWebhookRepository) MarkEventProcessing(ctx context.Context, id string) error {
	query := `UPDATE webhook_events SET status = 'processing' WHERE webhook_event_id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event %s processing: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("webhook event %s not found", id))
	}
	return nil
}

// MarkEventCompleted records successful processing and the correlated
// transaction, if any.
func (r *PgxWebhookRepository) MarkEventCompleted(ctx context.Context, id string, transactionID *string, processedAt time.Time) error {
	query := `
		UPDATE webhook_events
		SET status = 'completed',
		    transaction_id = COALESCE($2, transaction_id),
		    processed_at = $3,
		    error_message = NULL
		WHERE webhook_event_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, transactionID, processedAt)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event %s completed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("webhook event %s not found", id))
	}
	return nil
}

// MarkEventFailed records the error, bumps retry_count and returns the new
// count so the service can enforce the retry cap.
func (r *PgxWebhookRepository) MarkEventFailed(ctx context.Context, id string, errorMessage string) (int, error) {
	var count int
	query := `
		UPDATE webhook_events
		SET status = 'failed', error_message = $2, retry_count = retry_count + 1
		WHERE webhook_event_id = $1
		RETURNING retry_count
	`
	err := r.pool.QueryRow(ctx, query, id, errorMessage).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("webhook event %s not found", id))
		}
		return 0, fmt.Errorf("failed to mark webhook event %s failed: %w", id, err)
	}
	return count, nil
}

// FindRetryableEvents returns pending and failed events still below the
// retry cap, oldest first.
func (r *PgxWebhookRepository) FindRetryableEvents(ctx context.Context, maxRetries, limit int) ([]domain.WebhookEvent, error) {
	query := `
		SELECT ` + webhookEventColumns + `
		FROM webhook_events
		WHERE status IN ('pending', 'failed') AND retry_count < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query retryable webhook events: %w", err)
	}
	modelEvents, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.WebhookEvent])
	if err != nil {
		return nil, fmt.Errorf("failed to scan webhook event rows: %w", err)
	}

	events := make([]domain.WebhookEvent, 0, len(modelEvents))
	for _, m := range modelEvents {
		events = append(events, mapping.ToDomainWebhookEvent(m))
	}
	return events, nil
}

// InsertDelivery enqueues one outbound delivery row.
func (r *PgxWebhookRepository) InsertDelivery(ctx context.Context, d domain.WebhookDelivery) error {
	m := mapping.ToModelWebhookDelivery(d)
	query := `
		INSERT INTO webhook_deliveries (` + webhookDeliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.EventID, m.URL, m.Status, m.ResponseCode, m.ResponseBody,
		m.RetryCount, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert webhook delivery: %w", err)
	}
	return nil
}

// FindRetryableDeliveries returns undelivered rows still below the retry
// cap, oldest first.
func (r *PgxWebhookRepository) FindRetryableDeliveries(ctx context.Context, maxRetries, limit int) ([]domain.WebhookDelivery, error) {
	query := `
		SELECT ` + webhookDeliveryColumns + `
		FROM webhook_deliveries
		WHERE status IN ('pending', 'failed') AND retry_count < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, maxRetries, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query retryable webhook deliveries: %w", err)
	}
	modelDeliveries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.WebhookDelivery])
	if err != nil {
		return nil, fmt.Errorf("failed to scan webhook delivery rows: %w", err)
	}

	deliveries := make([]domain.WebhookDelivery, 0, len(modelDeliveries))
	for _, m := range modelDeliveries {
		deliveries = append(deliveries, mapping.ToDomainWebhookDelivery(m))
	}
	return deliveries, nil
}

// RecordDeliveryAttempt stores one attempt's outcome; failed attempts bump
// retry_count.
func (r *PgxWebhookRepository) RecordDeliveryAttempt(ctx context.Context, id string, status domain.DeliveryStatus, responseCode *int, responseBody *string) error {
	query := `
		UPDATE webhook_deliveries
		SET status = $2,
		    response_code = $3,
		    response_body = $4,
		    retry_count = retry_count + CASE WHEN $2 = 'failed' THEN 1 ELSE 0 END,
		    updated_at = now()
		WHERE delivery_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(status), responseCode, responseBody)
	if err != nil {
		return fmt.Errorf("failed to record delivery attempt %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("webhook delivery %s not found", id))
	}
	return nil
}
