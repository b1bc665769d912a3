package domain_test

import (
	"testing"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyPtr(s string) *money.Money {
	m := money.MustFromString(s)
	return &m
}

func TestFeeStructure_CoversAmount(t *testing.T) {
	rule := domain.FeeStructure{
		MinAmount: money.MustFromString("0"),
		MaxAmount: moneyPtr("1000"),
	}

	assert.True(t, rule.CoversAmount(money.MustFromString("0")), "min bound is inclusive")
	assert.True(t, rule.CoversAmount(money.MustFromString("999.999999999999999999")))
	assert.False(t, rule.CoversAmount(money.MustFromString("1000")), "max bound is exclusive")

	unbounded := domain.FeeStructure{MinAmount: money.MustFromString("1000")}
	assert.False(t, unbounded.CoversAmount(money.MustFromString("999")))
	assert.True(t, unbounded.CoversAmount(money.MustFromString("1000000000")))
}

func TestFeeStructure_EffectiveAt(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 6, 0)

	rule := domain.FeeStructure{EffectiveFrom: from, EffectiveUntil: &until}
	assert.False(t, rule.EffectiveAt(from.Add(-time.Second)))
	assert.True(t, rule.EffectiveAt(from))
	assert.True(t, rule.EffectiveAt(until.Add(-time.Second)))
	assert.False(t, rule.EffectiveAt(until), "effective_until is exclusive")

	open := domain.FeeStructure{EffectiveFrom: from}
	assert.True(t, open.EffectiveAt(from.AddDate(10, 0, 0)))
}

func TestFeeStructure_BandWidth(t *testing.T) {
	bounded := domain.FeeStructure{
		MinAmount: money.MustFromString("100"),
		MaxAmount: moneyPtr("600"),
	}
	w := bounded.BandWidth()
	require.NotNil(t, w)
	assert.True(t, w.Equal(money.MustFromString("500")))

	unbounded := domain.FeeStructure{MinAmount: money.MustFromString("100")}
	assert.Nil(t, unbounded.BandWidth())
}

func TestExchangeRate_EffectiveAt(t *testing.T) {
	from := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	until := from.Add(time.Hour)

	open := domain.ExchangeRate{ValidFrom: from}
	assert.True(t, open.IsOpen())
	assert.True(t, open.EffectiveAt(from))
	assert.False(t, open.EffectiveAt(from.Add(-time.Minute)))

	closed := domain.ExchangeRate{ValidFrom: from, ValidUntil: &until}
	assert.False(t, closed.IsOpen())
	assert.True(t, closed.EffectiveAt(from.Add(30*time.Minute)))
	assert.False(t, closed.EffectiveAt(until))
}
