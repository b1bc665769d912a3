package workers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
)

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SetRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindStaleRates(ctx context.Context, olderThan time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func TestRateStalenessMonitor_CheckWarnsOnlyOnOpenRates(t *testing.T) {
	repo := new(MockExchangeRateRepository)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	closedAt := time.Now().UTC().Add(-30 * time.Minute)
	repo.On("FindStaleRates", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.ExchangeRate{
		{FromCurrency: "KES", ToCurrency: "AFRI", Source: "manual", ValidFrom: time.Now().UTC().Add(-2 * time.Hour)},
		{FromCurrency: "NGN", ToCurrency: "AFRI", Source: "manual", ValidFrom: time.Now().UTC().Add(-3 * time.Hour), ValidUntil: &closedAt},
	}, nil).Once()

	m := NewRateStalenessMonitor(repo, logger, time.Minute, time.Hour)
	m.check(context.Background())

	assert.Contains(t, buf.String(), "KES/AFRI")
	assert.NotContains(t, buf.String(), "NGN/AFRI")
	repo.AssertExpectations(t)
}

func TestRateStalenessMonitor_CheckLogsRepositoryError(t *testing.T) {
	repo := new(MockExchangeRateRepository)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	repo.On("FindStaleRates", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("connection reset")).Once()

	m := NewRateStalenessMonitor(repo, logger, time.Minute, time.Hour)
	m.check(context.Background())

	assert.Contains(t, buf.String(), "Stale rate check failed")
	repo.AssertExpectations(t)
}
