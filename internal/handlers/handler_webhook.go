package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// webhookHandler receives provider notifications at the system boundary.
type webhookHandler struct {
	webhookService portssvc.WebhookSvcFacade
}

func newWebhookHandler(ws portssvc.WebhookSvcFacade) *webhookHandler {
	return &webhookHandler{webhookService: ws}
}

// RegisterWebhookRoutes registers the provider-facing intake endpoint.
// It lives outside the authenticated API group; the HMAC signature is the
// authentication.
func RegisterWebhookRoutes(r *gin.Engine, webhookService portssvc.WebhookSvcFacade) {
	h := newWebhookHandler(webhookService)
	r.POST("/webhooks/:provider", h.ingest)
}

// providerEnvelope is the minimal shape shared by Paystack-style provider
// payloads. Everything else stays opaque in the stored raw payload.
type providerEnvelope struct {
	Event string `json:"event"`
	ID    string `json:"id"`
	Data  struct {
		ID        json.Number `json:"id"`
		Reference string      `json:"reference"`
		Metadata  struct {
			TransactionID string `json:"transaction_id"`
		} `json:"metadata"`
	} `json:"data"`
}

func (e providerEnvelope) eventID() string {
	switch {
	case e.ID != "":
		return e.ID
	case e.Data.ID.String() != "":
		return e.Data.ID.String()
	default:
		return e.Data.Reference
	}
}

func (e providerEnvelope) transactionHint() *string {
	if e.Data.Metadata.TransactionID != "" {
		hint := e.Data.Metadata.TransactionID
		return &hint
	}
	if e.Data.Reference != "" {
		hint := e.Data.Reference
		return &hint
	}
	return nil
}

// ingest stores the event and answers immediately. Verification and ledger
// transitions run off the request path; redeliveries are answered with
// success so the provider stops retrying.
func (h *webhookHandler) ingest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provider := strings.ToLower(c.Param("provider"))

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty or unreadable body"})
		return
	}

	var envelope providerEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("Unparseable webhook body", slog.String("provider", provider), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if envelope.eventID() == "" || envelope.Event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload carries no event identity"})
		return
	}

	signature := c.GetHeader("X-Paystack-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Webhook-Signature")
	}

	event, err := h.webhookService.Ingest(c.Request.Context(), domain.PaymentEvent{
		Provider:        provider,
		EventID:         envelope.eventID(),
		EventType:       envelope.Event,
		Payload:         body,
		Signature:       signature,
		TransactionHint: envelope.transactionHint(),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Webhook redelivery absorbed",
				slog.String("provider", provider),
				slog.String("event_id", envelope.eventID()),
			)
			c.JSON(http.StatusOK, dto.ToWebhookEventResponse(*event, true))
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to store webhook event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store event"})
		return
	}

	logger.Info("Webhook event stored",
		slog.String("provider", provider),
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.EventType),
	)
	c.JSON(http.StatusOK, dto.ToWebhookEventResponse(*event, false))
}
