package habitbank

import (
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Points represents an amount of habit wealth. It is a virtual unit, not a
// currency: there is no fraction rule beyond two digits and no formatting
// locale to honor.
type Points struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Points {
	return Points{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	}
	return decimal.Zero // unreachable, the constraint is exhaustive
}

// Simple wrappers around decimal.Decimal.

func (p Points) Equal(q Points) bool              { return p.value.Equal(q.value) }
func (p Points) IsZero() bool                     { return p.value.IsZero() }
func (p Points) IsPositive() bool                 { return p.value.IsPositive() }
func (p Points) IsNegative() bool                 { return p.value.IsNegative() }
func (p Points) LessThan(q Points) bool           { return p.value.LessThan(q.value) }
func (p Points) LessThanOrEqual(q Points) bool    { return p.value.LessThanOrEqual(q.value) }
func (p Points) GreaterThan(q Points) bool        { return p.value.GreaterThan(q.value) }
func (p Points) GreaterThanOrEqual(q Points) bool { return p.value.GreaterThanOrEqual(q.value) }
func (p Points) Neg() Points                      { return Points{value: p.value.Neg()} }

// binary operators.
func (p Points) Add(q Points) Points { return Points{value: p.value.Add(q.value)} }
func (p Points) Sub(q Points) Points { return Points{value: p.value.Sub(q.value)} }

// Round returns the amount rounded to the nearest whole point.
func (p Points) Round() Points { return Points{value: p.value.Round(0)} }

// round2 keeps balances at a stable two-digit scale after interest accruals.
func (p Points) round2() Points { return Points{value: p.value.Round(2)} }

// AsFloat is needed by the compound interest computation, the only place
// where a fractional exponent forces float math.
func (p Points) AsFloat() float64 { return p.value.InexactFloat64() }

// String returns the plain numeric representation, e.g. "142.5".
func (p Points) String() string { return p.value.String() }

// SignedString returns the amount with an explicit sign, and "-" for zero.
func (p Points) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Points) MarshalJSON() ([]byte, error) {
	return p.value.Round(2).MarshalJSON()
}

func (p *Points) UnmarshalJSON(b []byte) error {
	return p.value.UnmarshalJSON(b)
}
