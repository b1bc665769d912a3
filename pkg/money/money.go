package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionScale is the number of fractional digits kept when dividing.
// Monetary columns are NUMERIC(38,18), so division never produces more
// precision than the store can hold.
const ConversionScale = 18

// Money is an exact, non-negative decimal amount. It is used for every
// amount, rate, fee and spread in the system; binary floats are never
// allowed to touch monetary values.
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{d: decimal.Zero}
}

// New wraps a decimal as Money. Negative values are rejected.
func New(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("money amount cannot be negative: %s", d.String())
	}
	return Money{d: d}, nil
}

// FromString parses a decimal string into Money.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return New(d)
}

// MustFromString parses a decimal string and panics on failure. Intended
// for constants and tests only.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt wraps an integer amount.
func FromInt(i int64) (Money, error) {
	return New(decimal.NewFromInt(i))
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o, failing if the result would be negative.
func (m Money) Sub(o Money) (Money, error) {
	r := m.d.Sub(o.d)
	if r.IsNegative() {
		return Money{}, fmt.Errorf("money subtraction underflow: %s - %s", m.d, o.d)
	}
	return Money{d: r}, nil
}

// ApplyRate returns m * rate, the local-to-AFRI conversion leg.
func (m Money) ApplyRate(rate Money) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return Money{d: m.d.Mul(rate.d)}, nil
}

// InverseRate returns m / rate, the AFRI-to-local conversion leg,
// rounded to ConversionScale fractional digits.
func (m Money) InverseRate(rate Money) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return Money{d: m.d.DivRound(rate.d, ConversionScale)}, nil
}

// Percent returns m * p / 100, computed in exact decimal arithmetic.
// Shifting the exponent keeps every digit; a decimal division here would
// round at DivisionPrecision and could zero out sub-1e-14 fees.
func (m Money) Percent(p Money) Money {
	return Money{d: m.d.Mul(p.d).Shift(-2)}
}

// Cmp compares two amounts: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports whether two amounts have the same exact decimal value.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// LessThan reports m < o.
func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

// GreaterThanOrEqual reports m >= o.
func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.d.GreaterThanOrEqual(o.d)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// String renders the exact decimal value.
func (m Money) String() string {
	return m.d.String()
}

// MarshalJSON renders the amount as a JSON string to avoid any float
// round-trip in clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.d.String() + `"`), nil
}

// UnmarshalJSON accepts both string and numeric JSON encodings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer so Money binds as an exact NUMERIC.
func (m Money) Value() (driver.Value, error) {
	return m.d.Value()
}

// Scan implements sql.Scanner for reading NUMERIC columns.
func (m *Money) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
