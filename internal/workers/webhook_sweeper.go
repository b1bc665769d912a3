package workers

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
)

// WebhookSweeper periodically reprocesses stored events still below the
// retry cap and pushes pending outbound deliveries. It is the only driver
// of webhook processing; the intake endpoint just stores.
type WebhookSweeper struct {
	webhookSvc portssvc.WebhookSvcFacade
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
}

// NewWebhookSweeper creates a new WebhookSweeper.
func NewWebhookSweeper(webhookSvc portssvc.WebhookSvcFacade, logger *slog.Logger, interval time.Duration, batchSize int) *WebhookSweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &WebhookSweeper{
		webhookSvc: webhookSvc,
		logger:     logger,
		interval:   interval,
		batchSize:  batchSize,
	}
}

// Run loops until the context is cancelled.
func (w *WebhookSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Webhook sweeper started", slog.Duration("interval", w.interval), slog.Int("batch_size", w.batchSize))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Webhook sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *WebhookSweeper) sweep(ctx context.Context) {
	processed, err := w.webhookSvc.SweepRetryable(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("Webhook sweep failed", slog.String("error", err.Error()))
	} else if processed > 0 {
		w.logger.Info("Webhook sweep completed", slog.Int("events", processed))
	}

	dispatched, err := w.webhookSvc.DispatchPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("Webhook dispatch failed", slog.String("error", err.Error()))
	} else if dispatched > 0 {
		w.logger.Info("Webhook dispatch completed", slog.Int("deliveries", dispatched))
	}
}
