package loan

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency-agnostic monetary amount
// =============================================================================

// Money wraps decimal.Decimal so ledger arithmetic never touches floats.
// Amounts carry no currency unit; schedules are computed in whatever
// currency the principal was stated in.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

func NewMoneyFromDecimal(value decimal.Decimal) Money {
	return Money{Value: value}
}

// ParseMoney parses a decimal string such as "120000" or "10330.61".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d}, nil
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(other Money) Money        { return Money{Value: m.Value.Add(other.Value)} }
func (m Money) Sub(other Money) Money        { return Money{Value: m.Value.Sub(other.Value)} }
func (m Money) Mul(s decimal.Decimal) Money  { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money  { return Money{Value: m.Value.Div(s)} }
func (m Money) Neg() Money                   { return Money{Value: m.Value.Neg()} }
func (m Money) IsNegative() bool             { return m.Value.IsNegative() }
func (m Money) IsZero() bool                 { return m.Value.IsZero() }
func (m Money) IsPositive() bool             { return m.Value.IsPositive() }
func (m Money) Equal(other Money) bool       { return m.Value.Equal(other.Value) }
func (m Money) GreaterThan(other Money) bool { return m.Value.GreaterThan(other.Value) }
func (m Money) LessThan(other Money) bool    { return m.Value.LessThan(other.Value) }

func (m Money) Min(other Money) Money {
	if m.LessThan(other) {
		return m
	}
	return other
}

func (m Money) Max(other Money) Money {
	if m.GreaterThan(other) {
		return m
	}
	return other
}

// RoundCents rounds half away from zero to two decimal places, the precision
// every emitted payment component carries.
func (m Money) RoundCents() Money { return Money{Value: m.Value.Round(2)} }

func (m Money) Float64() float64 { f, _ := m.Value.Float64(); return f }

// String always prints with two decimal places.
func (m Money) String() string { return m.Value.StringFixed(2) }
