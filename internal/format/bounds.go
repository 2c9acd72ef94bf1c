package format

import (
	"github.com/govalues/decimal"

	"github.com/dshills/numentry/internal/numeric"
)

var (
	// MaxValue is the upper limit of an unbounded field.
	MaxValue = decimal.MustParse("9999999999999999999")

	// MinValue is the lower limit of an unbounded field.
	MinValue = MaxValue.Neg()
)

// Bounds is an inclusive range of stored values. Min never exceeds Max.
type Bounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// NewBounds returns the range [min, max]. A max below min is raised to
// min.
func NewBounds(min, max decimal.Decimal) Bounds {
	if max.Cmp(min) < 0 {
		max = min
	}
	return Bounds{Min: min, Max: max}
}

// Unbounded returns the widest range a field supports.
func Unbounded() Bounds {
	return Bounds{Min: MinValue, Max: MaxValue}
}

// Clamp limits v to the range.
func (b Bounds) Clamp(v decimal.Decimal) decimal.Decimal {
	return numeric.Clamp(v, b.Min, b.Max)
}

// Contains reports whether v lies in the range.
func (b Bounds) Contains(v decimal.Decimal) bool {
	return v.Cmp(b.Min) >= 0 && v.Cmp(b.Max) <= 0
}

// PositiveMin reports whether every value in the range is above zero.
func (b Bounds) PositiveMin() bool {
	return b.Min.Sign() > 0
}

// NegativeMax reports whether every value in the range is below zero.
func (b Bounds) NegativeMax() bool {
	return b.Max.Sign() < 0
}

// IsLimit reports whether v is one of the unbounded sentinels.
func IsLimit(v decimal.Decimal) bool {
	return v.Cmp(MaxValue) == 0 || v.Cmp(MinValue) == 0
}
