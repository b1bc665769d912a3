package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/ports"
)

// RateStalenessMonitor flags open rates that have not been refreshed
// recently. It never closes or mutates rates; a stale quote is an
// operational signal, not an error state.
type RateStalenessMonitor struct {
	rateRepo ports.ExchangeRateRepository
	logger   *slog.Logger
	interval time.Duration
	maxAge   time.Duration
}

// NewRateStalenessMonitor creates a new RateStalenessMonitor.
func NewRateStalenessMonitor(rateRepo ports.ExchangeRateRepository, logger *slog.Logger, interval, maxAge time.Duration) *RateStalenessMonitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &RateStalenessMonitor{
		rateRepo: rateRepo,
		logger:   logger,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run loops until the context is cancelled.
func (m *RateStalenessMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("Rate staleness monitor started", slog.Duration("interval", m.interval), slog.Duration("max_age", m.maxAge))
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Rate staleness monitor stopped")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *RateStalenessMonitor) check(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-m.maxAge)
	stale, err := m.rateRepo.FindStaleRates(ctx, cutoff)
	if err != nil {
		m.logger.Error("Stale rate check failed", slog.String("error", err.Error()))
		return
	}
	for _, rate := range stale {
		// Only open rates can go stale; a closed row already has a successor
		// or an expiry.
		if !rate.IsOpen() {
			continue
		}
		m.logger.Warn("Open rate is stale",
			slog.String("pair", rate.Pair()),
			slog.Time("valid_from", rate.ValidFrom),
			slog.String("source", rate.Source),
		)
	}
}
