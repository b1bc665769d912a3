package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/google/uuid"
)

// eventClass is the provider-agnostic meaning of an event type.
type eventClass int

const (
	eventNeutral eventClass = iota
	eventSuccess
	eventFailure
)

// classifyEventType maps provider event names onto lifecycle signals by
// suffix, e.g. charge.success, transfer.failed, trustline.confirmed.
func classifyEventType(eventType string) eventClass {
	lower := strings.ToLower(eventType)
	switch {
	case strings.HasSuffix(lower, ".success"),
		strings.HasSuffix(lower, ".completed"),
		strings.HasSuffix(lower, ".confirmed"):
		return eventSuccess
	case strings.HasSuffix(lower, ".failed"),
		strings.HasSuffix(lower, ".declined"),
		strings.HasSuffix(lower, ".reversed"):
		return eventFailure
	}
	return eventNeutral
}

// WebhookService is the idempotent intake and outbound dispatch pipeline
// for provider events. Ingestion only stores; verification and ledger
// transitions happen off the request path, re-entrant under the bounded
// retry sweep.
type WebhookService struct {
	webhookRepo     ports.WebhookRepository
	txnSvc          portssvc.TransactionSvcFacade
	verifier        SignatureVerifier
	httpClient      *http.Client
	dispatchTargets []string
	maxRetries      int
}

var _ portssvc.WebhookSvcFacade = (*WebhookService)(nil)

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	webhookRepo ports.WebhookRepository,
	txnSvc portssvc.TransactionSvcFacade,
	verifier SignatureVerifier,
	httpClient *http.Client,
	dispatchTargets []string,
	maxRetries int,
) *WebhookService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &WebhookService{
		webhookRepo:     webhookRepo,
		txnSvc:          txnSvc,
		verifier:        verifier,
		httpClient:      httpClient,
		dispatchTargets: dispatchTargets,
		maxRetries:      maxRetries,
	}
}

// Ingest stores the inbound event exactly once. A provider redelivery hits
// the (provider, event_id) uniqueness constraint and comes back as the
// already-stored event plus ErrDuplicate; the HTTP layer still answers
// success so the provider stops retrying.
func (s *WebhookService) Ingest(ctx context.Context, ev domain.PaymentEvent) (*domain.WebhookEvent, error) {
	if ev.Provider == "" || ev.EventID == "" {
		return nil, apperrors.NewValidationError("provider and event_id are required")
	}

	event := domain.WebhookEvent{
		ID:            uuid.NewString(),
		EventID:       ev.EventID,
		Provider:      strings.ToLower(ev.Provider),
		EventType:     ev.EventType,
		Payload:       ev.Payload,
		Signature:     ev.Signature,
		Status:        domain.WebhookPending,
		TransactionID: ev.TransactionHint,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.webhookRepo.InsertEvent(ctx, event)
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, fmt.Errorf("failed to store webhook event: %w", err)
	}

	existing, findErr := s.webhookRepo.FindEventByProviderEventID(ctx, event.Provider, event.EventID)
	if findErr != nil {
		return nil, fmt.Errorf("failed to load duplicate webhook event: %w", findErr)
	}
	return existing, fmt.Errorf("%w: event %s/%s", apperrors.ErrDuplicate, event.Provider, event.EventID)
}

// Process verifies and applies one stored event. It is re-entrant: an
// event already completed is a no-op, and a ledger rejection of an
// out-of-order signal is absorbed as success rather than corrupting state.
func (s *WebhookService) Process(ctx context.Context, eventID string) error {
	event, err := s.webhookRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status == domain.WebhookCompleted {
		return nil
	}
	if event.RetryCount >= s.maxRetries {
		return fmt.Errorf("%w: event %s", apperrors.ErrRetryExhausted, eventID)
	}

	if err := s.verifier.Verify(event.Provider, event.Payload, event.Signature); err != nil {
		return s.failEvent(ctx, event, err)
	}

	if err := s.webhookRepo.MarkEventProcessing(ctx, event.ID); err != nil {
		return err
	}

	if err := s.applyLedgerTransition(ctx, event); err != nil {
		return s.failEvent(ctx, event, err)
	}

	if err := s.webhookRepo.MarkEventCompleted(ctx, event.ID, event.TransactionID, time.Now().UTC()); err != nil {
		return err
	}
	return s.enqueueDeliveries(ctx, event)
}

// applyLedgerTransition advances the correlated transaction according to
// the event class. Events with no correlated transaction complete with no
// ledger effect.
func (s *WebhookService) applyLedgerTransition(ctx context.Context, event *domain.WebhookEvent) error {
	if event.TransactionID == nil {
		return nil
	}
	txnID := *event.TransactionID

	var err error
	switch classifyEventType(event.EventType) {
	case eventSuccess:
		_, err = s.txnSvc.Complete(ctx, txnID, dto.SettlementDetails{})
	case eventFailure:
		_, err = s.txnSvc.Fail(ctx, txnID, "provider signalled failure: "+event.EventType)
	default:
		provider := event.Provider
		reference := event.EventID
		_, err = s.txnSvc.MarkProcessing(ctx, txnID, dto.ProcessingDetails{
			PaymentProvider:  &provider,
			PaymentReference: &reference,
		})
	}

	// A late or duplicate signal loses the guarded transition; that is the
	// designed idempotency outcome, not a processing failure.
	if errors.Is(err, apperrors.ErrInvalidTransition) {
		return nil
	}
	return err
}

// failEvent records the failure and bumps the bounded retry counter.
func (s *WebhookService) failEvent(ctx context.Context, event *domain.WebhookEvent, cause error) error {
	count, markErr := s.webhookRepo.MarkEventFailed(ctx, event.ID, cause.Error())
	if markErr != nil {
		return fmt.Errorf("failed to record webhook failure (%v): %w", cause, markErr)
	}
	if count >= s.maxRetries {
		return fmt.Errorf("%w: event %s after %d attempts: %v", apperrors.ErrRetryExhausted, event.ID, count, cause)
	}
	return cause
}

// SweepRetryable reprocesses events still below the retry cap. Failures
// stay recorded on the event rows; the sweep just keeps going.
func (s *WebhookService) SweepRetryable(ctx context.Context, limit int) (int, error) {
	events, err := s.webhookRepo.FindRetryableEvents(ctx, s.maxRetries, limit)
	if err != nil {
		return 0, err
	}
	for _, ev := range events {
		// Each event carries its own retry bookkeeping.
		_ = s.Process(ctx, ev.ID)
	}
	return len(events), nil
}

// enqueueDeliveries fans the event out to one delivery row per configured
// downstream consumer.
func (s *WebhookService) enqueueDeliveries(ctx context.Context, event *domain.WebhookEvent) error {
	now := time.Now().UTC()
	for _, url := range s.dispatchTargets {
		d := domain.WebhookDelivery{
			ID:        uuid.NewString(),
			EventID:   event.ID,
			URL:       url,
			Status:    domain.DeliveryPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.webhookRepo.InsertDelivery(ctx, d); err != nil {
			return fmt.Errorf("failed to enqueue delivery to %s: %w", url, err)
		}
	}
	return nil
}

// DispatchPending posts undelivered fan-out rows downstream, recording the
// response and bumping the bounded retry counter on failure.
func (s *WebhookService) DispatchPending(ctx context.Context, limit int) (int, error) {
	deliveries, err := s.webhookRepo.FindRetryableDeliveries(ctx, s.maxRetries, limit)
	if err != nil {
		return 0, err
	}

	for _, d := range deliveries {
		event, err := s.webhookRepo.FindEventByID(ctx, d.EventID)
		if err != nil {
			continue
		}
		status, code, body := s.attemptDelivery(ctx, d.URL, event)
		_ = s.webhookRepo.RecordDeliveryAttempt(ctx, d.ID, status, code, body)
	}
	return len(deliveries), nil
}

// attemptDelivery performs one HTTP POST of the event payload.
func (s *WebhookService) attemptDelivery(ctx context.Context, url string, event *domain.WebhookEvent) (domain.DeliveryStatus, *int, *string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(event.Payload))
	if err != nil {
		msg := err.Error()
		return domain.DeliveryFailed, nil, &msg
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.EventID)
	req.Header.Set("X-Event-Type", event.EventType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		msg := err.Error()
		return domain.DeliveryFailed, nil, &msg
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	// Keep at most 1KB of the response body for diagnostics.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	body := string(raw)

	if code >= 200 && code < 300 {
		return domain.DeliveryDelivered, &code, &body
	}
	return domain.DeliveryFailed, &code, &body
}
