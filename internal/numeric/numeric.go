// Package numeric holds the decimal helpers shared by the entry, unit and
// format packages: parsing of scientific notation, powers of ten, rounding
// and fixed-point rendering.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// Errors returned by numeric operations.
var (
	// ErrSyntax indicates the text is not a number.
	ErrSyntax = errors.New("invalid number syntax")

	// ErrPowerRange indicates a power of ten that a decimal cannot hold.
	ErrPowerRange = errors.New("power of ten out of range")
)

const (
	// MinPower is the smallest exponent Pow10 accepts.
	MinPower = -decimal.MaxScale

	// MaxPower is the largest exponent Pow10 accepts.
	MaxPower = 18
)

// Pow10 returns 10^n.
func Pow10(n int) (decimal.Decimal, error) {
	if n < MinPower || n > MaxPower {
		return decimal.Decimal{}, fmt.Errorf("%w: 10^%d", ErrPowerRange, n)
	}
	if n < 0 {
		return decimal.New(1, -n)
	}
	coef := int64(1)
	for i := 0; i < n; i++ {
		coef *= 10
	}
	return decimal.New(coef, 0)
}

// Scale multiplies d by 10^n.
func Scale(d decimal.Decimal, n int) (decimal.Decimal, error) {
	if n == 0 {
		return d, nil
	}
	p, err := Pow10(n)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Mul(p)
}

// Parse converts text such as "-1.5", "2E+3" or ".5" into a decimal.
// sep is the decimal separator; leading and trailing blanks are ignored.
func Parse(text string, sep rune) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Decimal{}, ErrSyntax
	}

	exp := 0
	if i := strings.LastIndexAny(s, "eE"); i >= 0 {
		digits := s[i+1:]
		if digits == "" {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		exp = n
		s = s[:i]
	}

	mant, err := parseMantissa(s, sep)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	return Scale(mant, exp)
}

func parseMantissa(s string, sep rune) (decimal.Decimal, error) {
	if sep != '.' {
		if strings.ContainsRune(s, '.') {
			return decimal.Decimal{}, ErrSyntax
		}
		s = strings.ReplaceAll(s, string(sep), ".")
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" || s[0] < '0' || s[0] > '9' {
		return decimal.Decimal{}, ErrSyntax
	}

	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// Round rounds d to scale fractional digits, half away from zero.
func Round(d decimal.Decimal, scale int) decimal.Decimal {
	if scale < 0 {
		scale = 0
	}
	if scale >= d.Scale() {
		return d
	}
	half := decimal.MustNew(5, scale+1)
	var r decimal.Decimal
	var err error
	if d.IsNeg() {
		r, err = d.Sub(half)
	} else {
		r, err = d.Add(half)
	}
	if err != nil {
		return d.Round(scale)
	}
	return r.Trunc(scale)
}

// FormatFixed renders d with exactly digits fractional digits.
func FormatFixed(d decimal.Decimal, digits int) string {
	if digits <= 0 {
		return Round(d, 0).String()
	}
	if digits > decimal.MaxScale {
		digits = decimal.MaxScale
	}
	return Round(d, digits).Pad(digits).String()
}

// FormatTrimmed renders d with at most digits fractional digits and no
// trailing zeros.
func FormatTrimmed(d decimal.Decimal, digits int) string {
	if digits <= 0 {
		return Round(d, 0).String()
	}
	return Round(d, digits).Trim(0).String()
}

// FormatPlain renders d at its natural scale without trailing zeros.
func FormatPlain(d decimal.Decimal) string {
	return d.Trim(0).String()
}

// FormatExponent renders an exponent value with a mandatory sign.
func FormatExponent(n int) string {
	return fmt.Sprintf("%+d", n)
}

// Log10Ratio returns log10(a/b) rounded to the nearest integer. Ratios of
// non-positive values yield 0.
func Log10Ratio(a, b decimal.Decimal) int {
	fa, _ := a.Float64()
	fb, _ := b.Float64()
	if fa <= 0 || fb <= 0 {
		return 0
	}
	return int(math.Round(math.Log10(fa / fb)))
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.Cmp(lo) < 0 {
		return lo
	}
	if d.Cmp(hi) > 0 {
		return hi
	}
	return d
}

// Quantize snaps d to the nearest multiple of step using half-to-even
// rounding. A zero step leaves d unchanged.
func Quantize(d, step decimal.Decimal) (decimal.Decimal, error) {
	if step.Sign() <= 0 {
		return d, nil
	}
	q, err := d.Quo(step)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return step.Mul(q.Round(0))
}
